package cart

import (
	"encoding/json"
	"fmt"
)

// SnapshotVersion is the current schema version of the persisted cart form.
// Version 1 snapshots predate the identity field and are migrated on load.
const SnapshotVersion = 2

// Snapshot is the versioned serialized form of a cart, as held by the
// client-side storage adapter.
type Snapshot struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

// Encode serializes the cart at the current snapshot version.
func Encode(c *Cart) ([]byte, error) {
	snap := Snapshot{
		Version: SnapshotVersion,
		Items:   c.Items,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	return data, nil
}

// Decode deserializes a stored snapshot into a cart, migrating older
// versions to the current schema first.
func Decode(data []byte) (*Cart, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("cart snapshot version %d is newer than supported version %d", snap.Version, SnapshotVersion)
	}
	if snap.Version < SnapshotVersion {
		migrateSnapshot(&snap)
	}
	return &Cart{Items: snap.Items}, nil
}

// migrateSnapshot upgrades an older snapshot in place. Version 1 records
// lack the identity field, so it is reconstructed from the product id and
// the normalized custom message. Lines that collapse onto an identity
// already seen merge by summing quantities, restoring the one-line-per-
// identity invariant.
func migrateSnapshot(snap *Snapshot) {
	migrated := make([]Item, 0, len(snap.Items))
	index := make(map[string]int)

	for _, item := range snap.Items {
		if item.Identity == "" {
			item.Identity = ItemIdentity(item.Product.ID, item.CustomMessage)
		}
		if i, ok := index[item.Identity]; ok {
			migrated[i].Quantity += item.Quantity
			continue
		}
		index[item.Identity] = len(migrated)
		migrated = append(migrated, item)
	}

	snap.Items = migrated
	snap.Version = SnapshotVersion
}
