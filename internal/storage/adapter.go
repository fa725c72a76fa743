package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"example.com/nexus/backend/internal/models"
	"example.com/nexus/backend/internal/store"
)

// Adapter mirrors the store's journal and chat collections into durable
// key-value storage. Every mutation rewrites the full collection; read
// errors and corrupt blobs degrade to the in-memory defaults, never to a
// user-visible failure.
type Adapter struct {
	kv KV
}

// NewAdapter builds the persistence adapter.
func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// Hydrate loads both persisted collections into the store. Absent or
// malformed data is treated as "no stored value".
func (a *Adapter) Hydrate(ctx context.Context, st *store.Store) {
	if raw, ok := a.load(ctx, KeyJournal); ok {
		var entries []models.JournalEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			slog.Warn("discarding corrupt journal state", slog.String("error", err.Error()))
		} else {
			st.SetJournalEntries(entries)
		}
	}

	if raw, ok := a.load(ctx, KeyChat); ok {
		var messages []models.ChatMessage
		if err := json.Unmarshal(raw, &messages); err != nil {
			slog.Warn("discarding corrupt chat state", slog.String("error", err.Error()))
		} else if len(messages) > 0 {
			st.SetChatMessages(messages)
		}
	}
}

// JournalChanged implements store.Listener.
func (a *Adapter) JournalChanged(ctx context.Context, entries []models.JournalEntry) {
	a.save(ctx, KeyJournal, entries)
}

// ChatChanged implements store.Listener.
func (a *Adapter) ChatChanged(ctx context.Context, messages []models.ChatMessage) {
	a.save(ctx, KeyChat, messages)
}

// LoadUser reads the persisted session user, if any.
func (a *Adapter) LoadUser(ctx context.Context) (models.User, bool) {
	raw, ok := a.load(ctx, KeyUser)
	if !ok {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		slog.Warn("discarding corrupt session state", slog.String("error", err.Error()))
		return models.User{}, false
	}

	return user, true
}

// SaveUser persists the session user.
func (a *Adapter) SaveUser(ctx context.Context, user models.User) {
	a.save(ctx, KeyUser, user)
}

// DeleteUser drops the session.
func (a *Adapter) DeleteUser(ctx context.Context) {
	if err := a.kv.Delete(ctx, KeyUser); err != nil {
		slog.Warn("failed to delete session state", slog.String("error", err.Error()))
	}
}

func (a *Adapter) load(ctx context.Context, key string) ([]byte, bool) {
	raw, err := a.kv.Load(ctx, key)
	if errors.Is(err, ErrNoValue) {
		return nil, false
	}
	if err != nil {
		slog.Warn("failed to load state", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}

	return raw, true
}

func (a *Adapter) save(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("failed to encode state", slog.String("key", key), slog.String("error", err.Error()))
		return
	}

	if err := a.kv.Save(ctx, key, raw); err != nil {
		slog.Warn("failed to save state", slog.String("key", key), slog.String("error", err.Error()))
	}
}
