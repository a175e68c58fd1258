package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSelection = errors.New("selection out of range")
	ErrNotAWeapon       = errors.New("entry is not a weapon")
)

// EntryKind определяет вариант записи инвентаря.
type EntryKind int32

const (
	EntryItem EntryKind = iota
	EntryWeapon
)

// String returns human-readable entry kind name.
func (k EntryKind) String() string {
	switch k {
	case EntryItem:
		return "Item"
	case EntryWeapon:
		return "Weapon"
	default:
		return "Unknown"
	}
}

// Entry: запись инвентаря: либо обычный Item, либо Weapon.
// Tagged union; the zero value is an empty plain item.
type Entry struct {
	kind   EntryKind
	item   Item
	weapon Weapon
}

// ItemEntry wraps a plain item.
func ItemEntry(item Item) Entry {
	return Entry{kind: EntryItem, item: item}
}

// WeaponEntry wraps a weapon.
func WeaponEntry(weapon Weapon) Entry {
	return Entry{kind: EntryWeapon, weapon: weapon}
}

// IsWeapon returns true if the entry holds a weapon.
func (e Entry) IsWeapon() bool {
	return e.kind == EntryWeapon
}

// Weapon returns the weapon held by the entry.
// ok is false for plain items.
func (e Entry) Weapon() (Weapon, bool) {
	if e.kind != EntryWeapon {
		return Weapon{}, false
	}
	return e.weapon, true
}

// Item returns the item part of the entry (for weapons, the wrapped item).
func (e Entry) Item() Item {
	if e.kind == EntryWeapon {
		return e.weapon.Item
	}
	return e.item
}

// Name returns the display name of the entry.
func (e Entry) Name() string {
	return e.Item().Name
}

// String returns the full description: weapon stats for weapons, name for items.
func (e Entry) String() string {
	if e.kind == EntryWeapon {
		return e.weapon.String()
	}
	return e.item.String()
}

// MarshalJSON encodes the entry externally tagged: {"Item":{...}} or {"Weapon":{...}}.
func (e Entry) MarshalJSON() ([]byte, error) {
	switch e.kind {
	case EntryItem:
		return json.Marshal(map[string]Item{"Item": e.item})
	case EntryWeapon:
		return json.Marshal(map[string]Weapon{"Weapon": e.weapon})
	default:
		return nil, fmt.Errorf("unknown entry kind %d", e.kind)
	}
}

// UnmarshalJSON decodes an externally tagged entry.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decoding inventory entry: %w", err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("inventory entry must have exactly one tag, got %d", len(raw))
	}

	if body, ok := raw["Item"]; ok {
		var item Item
		if err := json.Unmarshal(body, &item); err != nil {
			return fmt.Errorf("decoding item entry: %w", err)
		}
		*e = ItemEntry(item)
		return nil
	}
	if body, ok := raw["Weapon"]; ok {
		var weapon Weapon
		if err := json.Unmarshal(body, &weapon); err != nil {
			return fmt.Errorf("decoding weapon entry: %w", err)
		}
		*e = WeaponEntry(weapon)
		return nil
	}

	for tag := range raw {
		return fmt.Errorf("unknown inventory entry tag %q", tag)
	}
	return nil
}

// Inventory: упорядоченный список записей.
// Порядок вставки сохраняется, в том числе после удаления из середины;
// индексы используются меню для выбора.
type Inventory struct {
	entries []Entry
}

// NewInventory создаёт инвентарь из списка записей (копирует slice).
func NewInventory(entries ...Entry) Inventory {
	if len(entries) == 0 {
		return Inventory{}
	}
	return Inventory{entries: append([]Entry(nil), entries...)}
}

// Len returns the number of entries.
func (inv *Inventory) Len() int {
	return len(inv.entries)
}

// IsEmpty returns true if there are no entries.
func (inv *Inventory) IsEmpty() bool {
	return len(inv.entries) == 0
}

// At returns the entry at index.
func (inv *Inventory) At(index int) (Entry, error) {
	if index < 0 || index >= len(inv.entries) {
		return Entry{}, fmt.Errorf("inventory index %d (len %d): %w", index, len(inv.entries), ErrInvalidSelection)
	}
	return inv.entries[index], nil
}

// Add appends an entry to the end.
func (inv *Inventory) Add(e Entry) {
	inv.entries = append(inv.entries, e)
}

// RemoveAt removes the entry at index, shifting later entries left.
func (inv *Inventory) RemoveAt(index int) (Entry, error) {
	e, err := inv.At(index)
	if err != nil {
		return Entry{}, err
	}
	inv.entries = append(inv.entries[:index], inv.entries[index+1:]...)
	if len(inv.entries) == 0 {
		inv.entries = nil
	}
	return e, nil
}

// Entries returns a copy of all entries in order.
func (inv *Inventory) Entries() []Entry {
	return append([]Entry(nil), inv.entries...)
}

// TotalWeight returns the summed weight of all entries.
func (inv *Inventory) TotalWeight() float32 {
	var total float32
	for _, e := range inv.entries {
		total += e.Item().Weight
	}
	return total
}

// Names returns entry names joined by ", ", or "None" for an empty inventory.
func (inv *Inventory) Names() string {
	if len(inv.entries) == 0 {
		return "None"
	}
	names := make([]string, len(inv.entries))
	for i, e := range inv.entries {
		names[i] = e.Name()
	}
	return strings.Join(names, ", ")
}

// Labels returns the full description of each entry (for choice menus).
func (inv *Inventory) Labels() []string {
	labels := make([]string, len(inv.entries))
	for i, e := range inv.entries {
		labels[i] = e.String()
	}
	return labels
}

// MarshalJSON encodes the inventory as an array of entries.
func (inv Inventory) MarshalJSON() ([]byte, error) {
	if inv.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(inv.entries)
}

// UnmarshalJSON decodes an array of entries.
func (inv *Inventory) UnmarshalJSON(b []byte) error {
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		entries = nil
	}
	inv.entries = entries
	return nil
}
