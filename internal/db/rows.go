package db

import (
	"database/sql"

	"github.com/udisondev/quincy/internal/data"
	"github.com/udisondev/quincy/internal/model"
)

// Queries shared by the SQLite and PostgreSQL catalogs.
// Column order matters for the pgx Scan calls.
const (
	enemiesQuery = `SELECT e.name AS name,
		e.physique AS physique, e.technique AS technique, e.mystique AS mystique,
		w.name AS weapon_name, w.weight AS weapon_weight, w.value AS weapon_value,
		w.physique_scale AS weapon_physique_scale,
		w.technique_scale AS weapon_technique_scale,
		w.mystique_scale AS weapon_mystique_scale
		FROM enemies e LEFT JOIN weapons w ON w.name = e.weapon
		ORDER BY e.position, e.name`

	weaponsQuery = `SELECT name, weight, value, physique_scale, technique_scale, mystique_scale
		FROM weapons WHERE for_sale
		ORDER BY position, name`
)

// enemyRow: строка enemies LEFT JOIN weapons.
type enemyRow struct {
	Name      string        `db:"name"`
	Physique  sql.NullInt32 `db:"physique"`
	Technique sql.NullInt32 `db:"technique"`
	Mystique  sql.NullInt32 `db:"mystique"`

	WeaponName           sql.NullString  `db:"weapon_name"`
	WeaponWeight         sql.NullFloat64 `db:"weapon_weight"`
	WeaponValue          sql.NullInt32   `db:"weapon_value"`
	WeaponPhysiqueScale  sql.NullFloat64 `db:"weapon_physique_scale"`
	WeaponTechniqueScale sql.NullFloat64 `db:"weapon_technique_scale"`
	WeaponMystiqueScale  sql.NullFloat64 `db:"weapon_mystique_scale"`
}

// Template converts the row into an enemy template.
// Rows without stats spawn as a bare enemy (zero stats, 100 health).
func (r enemyRow) Template() data.EnemyTemplate {
	t := data.EnemyTemplate{Name: r.Name}
	if r.Physique.Valid || r.Technique.Valid || r.Mystique.Valid {
		s := model.NewStats(r.Physique.Int32, r.Technique.Int32, r.Mystique.Int32)
		t.Stats = &s
	}
	if r.WeaponName.Valid {
		w := model.NewWeapon(
			r.WeaponName.String,
			float32(r.WeaponWeight.Float64),
			r.WeaponValue.Int32,
			float32(r.WeaponPhysiqueScale.Float64),
			float32(r.WeaponTechniqueScale.Float64),
			float32(r.WeaponMystiqueScale.Float64),
		)
		t.Weapon = &w
	}
	return t
}

// weaponRow: строка таблицы weapons.
type weaponRow struct {
	Name           string  `db:"name"`
	Weight         float64 `db:"weight"`
	Value          int32   `db:"value"`
	PhysiqueScale  float64 `db:"physique_scale"`
	TechniqueScale float64 `db:"technique_scale"`
	MystiqueScale  float64 `db:"mystique_scale"`
}

// Weapon converts the row into a model weapon.
func (r weaponRow) Weapon() model.Weapon {
	return data.WeaponDef{
		Name:           r.Name,
		Weight:         float32(r.Weight),
		Value:          r.Value,
		PhysiqueScale:  float32(r.PhysiqueScale),
		TechniqueScale: float32(r.TechniqueScale),
		MystiqueScale:  float32(r.MystiqueScale),
	}.Weapon()
}
