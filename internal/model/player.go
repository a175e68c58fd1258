package model

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
)

// Defaults for a freshly created character.
const (
	DefaultStartingMoney int32 = 100
	DefaultLocation            = "None"
	DefaultQuest               = "None"
	RandomPlayerName           = "Default"
)

var (
	ErrInsufficientFunds = errors.New("not enough money")
	ErrNotSellable       = errors.New("only weapons can be sold")
)

// Player: персонаж игрока.
//
// Health may drop below zero after a hit; the player counts as defeated
// once health < 1. Equipped is nil only transiently during a swap.
// Player is owned by one game session and is not safe for concurrent use.
type Player struct {
	name     string
	location string
	quest    string
	stats    Stats

	health  int32
	stamina int32
	mana    int32
	money   int32

	inventory Inventory
	equipped  *Weapon
	triggers  map[string]bool
}

// NewPlayer создаёт персонажа с полными HP/SP/MP, 100 монетами и "Hands".
func NewPlayer(name string, stats Stats) *Player {
	hands := Unarmed()
	return &Player{
		name:     name,
		location: DefaultLocation,
		quest:    DefaultQuest,
		stats:    stats,
		health:   stats.MaxHealth(),
		stamina:  stats.MaxStamina(),
		mana:     stats.MaxMana(),
		money:    DefaultStartingMoney,
		equipped: &hands,
		triggers: make(map[string]bool),
	}
}

// NewRandomPlayer создаёт персонажа "Default" со случайными атрибутами 1..5.
func NewRandomPlayer(rng *rand.Rand) *Player {
	stats := NewStats(
		rng.Int32N(5)+1,
		rng.Int32N(5)+1,
		rng.Int32N(5)+1,
	)
	return NewPlayer(RandomPlayerName, stats)
}

// Name returns the player name (also the save slot key).
func (p *Player) Name() string { return p.name }

// Location returns current location.
func (p *Player) Location() string { return p.location }

// SetLocation sets current location.
func (p *Player) SetLocation(location string) { p.location = location }

// Quest returns the active quest.
func (p *Player) Quest() string { return p.quest }

// SetQuest sets the active quest.
func (p *Player) SetQuest(quest string) { p.quest = quest }

// Stats returns the primary attributes.
func (p *Player) Stats() Stats { return p.stats }

// CombatStats implements Combatant.
func (p *Player) CombatStats() Stats { return p.stats }

// Health returns current health (may be negative).
func (p *Player) Health() int32 { return p.health }

// SetHealth sets current health without clamping.
func (p *Player) SetHealth(hp int32) { p.health = hp }

// Stamina returns current stamina.
func (p *Player) Stamina() int32 { return p.stamina }

// Mana returns current mana.
func (p *Player) Mana() int32 { return p.mana }

// Money returns the coin balance.
func (p *Player) Money() int32 { return p.money }

// SetMoney sets the coin balance.
func (p *Player) SetMoney(money int32) { p.money = money }

// Inventory returns the player's inventory for in-place modification.
func (p *Player) Inventory() *Inventory { return &p.inventory }

// Equipped returns the equipped weapon; ok is false when nothing is equipped.
func (p *Player) Equipped() (Weapon, bool) {
	if p.equipped == nil {
		return Weapon{}, false
	}
	return *p.equipped, true
}

// Equip replaces the equipped weapon and returns the previous one (nil if none).
func (p *Player) Equip(w Weapon) *Weapon {
	prev := p.equipped
	p.equipped = &w
	return prev
}

// IsDefeated reports whether health dropped below 1.
func (p *Player) IsDefeated() bool {
	return p.health < 1
}

// Damage implements Attacker: equipped weapon damage against own stats, 1 if unarmed slot is empty.
func (p *Player) Damage() int32 {
	if p.equipped == nil {
		return 1
	}
	return p.equipped.Damage(p.stats)
}

// Defense implements Defender: equals physique.
func (p *Player) Defense() int32 {
	return p.stats.Physique
}

// TakeDamage implements Defender.
func (p *Player) TakeDamage(amount int32) {
	p.health -= amount
}

// Trigger returns a story flag and whether it was ever set.
func (p *Player) Trigger(key string) (value, ok bool) {
	value, ok = p.triggers[key]
	return value, ok
}

// SetTrigger records a story flag.
func (p *Player) SetTrigger(key string, value bool) {
	if p.triggers == nil {
		p.triggers = make(map[string]bool)
	}
	p.triggers[key] = value
}

// HasStarted reports whether any story flag was recorded.
func (p *Player) HasStarted() bool {
	return len(p.triggers) > 0
}

// ItemNames returns inventory names joined by ", " or "None".
func (p *Player) ItemNames() string {
	return p.inventory.Names()
}

// CarryLoad returns the weight of inventory plus the equipped weapon.
func (p *Player) CarryLoad() float32 {
	load := p.inventory.TotalWeight()
	if p.equipped != nil {
		load += p.equipped.Item.Weight
	}
	return load
}

// EquipFromInventory экипирует оружие из инвентаря по индексу.
//
// The chosen weapon leaves the inventory with its scales normalized to 1/1/1,
// and the previously equipped weapon is appended to the end of the inventory,
// so the inventory length is unchanged.
//
// Returns:
//   - Weapon: newly equipped weapon (normalized)
//   - error: ErrInvalidSelection or ErrNotAWeapon; no state change on error
func (p *Player) EquipFromInventory(index int) (Weapon, error) {
	e, err := p.inventory.At(index)
	if err != nil {
		return Weapon{}, err
	}
	w, ok := e.Weapon()
	if !ok {
		return Weapon{}, fmt.Errorf("equipping %q: %w", e.Name(), ErrNotAWeapon)
	}

	if _, err := p.inventory.RemoveAt(index); err != nil {
		return Weapon{}, err
	}

	normalized := w.Normalized()
	if prev := p.Equip(normalized); prev != nil {
		p.inventory.Add(WeaponEntry(*prev))
	}
	return normalized, nil
}

// Buy покупает оружие: списывает value и добавляет копию в конец инвентаря.
// Returns ErrInsufficientFunds (no state change) if money < value.
func (p *Player) Buy(w Weapon) error {
	if p.money < w.Value() {
		return fmt.Errorf("buying %q for %d with %d: %w", w.Name(), w.Value(), p.money, ErrInsufficientFunds)
	}
	p.money -= w.Value()
	p.inventory.Add(WeaponEntry(w))
	return nil
}

// Sell продаёт оружие из инвентаря по индексу.
// Plain items are not sellable (ErrNotSellable).
func (p *Player) Sell(index int) (Weapon, error) {
	e, err := p.inventory.At(index)
	if err != nil {
		return Weapon{}, err
	}
	w, ok := e.Weapon()
	if !ok {
		return Weapon{}, fmt.Errorf("selling %q: %w", e.Name(), ErrNotSellable)
	}

	if _, err := p.inventory.RemoveAt(index); err != nil {
		return Weapon{}, err
	}
	p.money += w.Value()
	return w, nil
}

// String returns the character sheet line.
func (p *Player) String() string {
	return fmt.Sprintf("(name: %s, stats: %s, health: %d, stamina: %d, mana: %d, money: %d, quest: %s, location: %s, triggered: %v)",
		p.name, p.stats, p.health, p.stamina, p.mana, p.money, p.quest, p.location, p.triggers)
}

// PlayerState: плоское представление Player для сохранения.
type PlayerState struct {
	Name      string          `json:"name"`
	Location  string          `json:"location"`
	Quest     string          `json:"quest"`
	Stats     Stats           `json:"stats"`
	Health    int32           `json:"health"`
	Stamina   int32           `json:"stamina"`
	Mana      int32           `json:"mana"`
	Money     int32           `json:"money"`
	Inventory Inventory       `json:"inventory"`
	Equipped  *Weapon         `json:"equipped"`
	Triggers  map[string]bool `json:"triggers"`
}

// State returns a deep copy of the player as PlayerState.
func (p *Player) State() PlayerState {
	var equipped *Weapon
	if p.equipped != nil {
		w := *p.equipped
		equipped = &w
	}
	triggers := maps.Clone(p.triggers)
	if triggers == nil {
		triggers = make(map[string]bool)
	}
	return PlayerState{
		Name:      p.name,
		Location:  p.location,
		Quest:     p.quest,
		Stats:     p.stats,
		Health:    p.health,
		Stamina:   p.stamina,
		Mana:      p.mana,
		Money:     p.money,
		Inventory: NewInventory(p.inventory.Entries()...),
		Equipped:  equipped,
		Triggers:  triggers,
	}
}

// RestorePlayer rebuilds a Player from saved state.
func RestorePlayer(s PlayerState) *Player {
	var equipped *Weapon
	if s.Equipped != nil {
		w := *s.Equipped
		equipped = &w
	}
	triggers := maps.Clone(s.Triggers)
	if triggers == nil {
		triggers = make(map[string]bool)
	}
	return &Player{
		name:      s.Name,
		location:  s.Location,
		quest:     s.Quest,
		stats:     s.Stats,
		health:    s.Health,
		stamina:   s.Stamina,
		mana:      s.Mana,
		money:     s.Money,
		inventory: NewInventory(s.Inventory.Entries()...),
		equipped:  equipped,
		triggers:  triggers,
	}
}
