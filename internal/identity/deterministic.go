package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// EntryUUID derives the id for an imported journal entry. Imports keyed by
// date stay idempotent: re-running an import rewrites the same record.
func EntryUUID(date string) uuid.UUID {
	return UUID("go-planner:entry:" + strings.TrimSpace(date))
}

// MediaUUID derives the id for an imported media attachment.
func MediaUUID(entryID uuid.UUID, url string) uuid.UUID {
	return UUID("go-planner:media:" + entryID.String() + ":" + strings.TrimSpace(url))
}

// DemoDecorUUID derives the id for a built-in demo decoration.
func DemoDecorUUID(year int, month int, page string, ordinal int) uuid.UUID {
	return UUID("go-planner:demo_decor:" + formatKey(year, month, page, ordinal))
}

func formatKey(year int, month int, page string, ordinal int) string {
	return strings.Join([]string{
		strconv.Itoa(year),
		strconv.Itoa(month),
		strings.ToLower(strings.TrimSpace(page)),
		strconv.Itoa(ordinal),
	}, ":")
}
