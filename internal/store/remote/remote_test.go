package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/client"
	"github.com/orkadia/orkadia/pkg/domain"
)

func newTestStore(t *testing.T, h http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(client.New(srv.URL, "anon", "tok"))
}

func TestInsertBlockConflict(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/user_blocks" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"code": "23505", "message": "duplicate key"}) //nolint:errcheck
	})
	_, err := s.InsertBlock(context.Background(), domain.UserBlock{BlockerID: uuid.New(), BlockedID: uuid.New()})
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("InsertBlock() error = %v, want ErrConflict", err)
	}
	if !client.IsConflict(err) {
		t.Errorf("provider error lost: %v", err)
	}
}

func TestProfileNotFound(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		json.NewEncoder(w).Encode(map[string]string{"code": "PGRST116", "message": "0 rows"}) //nolint:errcheck
	})
	if _, err := s.Profile(context.Background(), uuid.New()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Profile() error = %v, want ErrNotFound", err)
	}
}

func TestAddPoints(t *testing.T) {
	uid := uuid.New()
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/rpc/increment_points" {
			http.NotFound(w, r)
			return
		}
		var args struct {
			UserID uuid.UUID `json:"p_user_id"`
			Amount int       `json:"p_amount"`
		}
		json.NewDecoder(r.Body).Decode(&args) //nolint:errcheck
		if args.UserID != uid {
			w.Write([]byte("null")) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(100 + args.Amount) //nolint:errcheck
	})
	total, err := s.AddPoints(context.Background(), uid, 50)
	if err != nil {
		t.Fatalf("AddPoints() error: %v", err)
	}
	if total != 150 {
		t.Errorf("AddPoints() = %d, want 150", total)
	}
	if _, err := s.AddPoints(context.Background(), uuid.New(), 5); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("AddPoints(missing) error = %v, want ErrNotFound", err)
	}
}

func TestIncrementInviteUseExhausted(t *testing.T) {
	codeID := uuid.New()
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/rpc/redeem_invite_code":
			var body struct {
				CodeID uuid.UUID `json:"p_code_id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.CodeID == uuid.Nil {
				t.Errorf("redeem_invite_code body: id=%s err=%v", body.CodeID, err)
			}
			w.Write([]byte("[]")) //nolint:errcheck
		case "/rest/v1/invite_codes":
			if r.URL.Query().Get("id") == "eq."+codeID.String() {
				w.Header().Set("Content-Range", "*/1")
			} else {
				w.Header().Set("Content-Range", "*/0")
			}
			w.Write([]byte("[]")) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	})
	if _, err := s.IncrementInviteUse(context.Background(), codeID); !errors.Is(err, store.ErrExhausted) {
		t.Errorf("IncrementInviteUse() error = %v, want ErrExhausted", err)
	}
	if _, err := s.IncrementInviteUse(context.Background(), uuid.New()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("IncrementInviteUse(missing) error = %v, want ErrNotFound", err)
	}
}

func TestEarnedAchievementsSkipsMissingRelation(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("select"); got != "earned_at,achievement:achievements(*)" {
			t.Errorf("select = %q", got)
		}
		now := time.Now().UTC()
		json.NewEncoder(w).Encode([]map[string]any{ //nolint:errcheck
			{"earned_at": now, "achievement": map[string]any{"key": "writer", "name": "Writer", "points": 20}},
			{"earned_at": now, "achievement": nil},
		})
	})
	got, err := s.EarnedAchievements(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("EarnedAchievements() error: %v", err)
	}
	if len(got) != 1 || got[0].Key != "writer" {
		t.Errorf("EarnedAchievements() = %+v", got)
	}
}

func TestDeleteBlockMissing(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.Write([]byte("[]")) //nolint:errcheck
	})
	if err := s.DeleteBlock(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteBlock() error = %v, want ErrNotFound", err)
	}
}

func TestConversationFilter(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		want := "(and(from_user_id.eq." + a.String() + ",to_user_id.eq." + b.String() +
			"),and(from_user_id.eq." + b.String() + ",to_user_id.eq." + a.String() + "))"
		if got := r.URL.Query().Get("or"); got != want {
			t.Errorf("or = %q, want %q", got, want)
		}
		if got := r.URL.Query().Get("order"); got != "created_at.asc" {
			t.Errorf("order = %q", got)
		}
		w.Write([]byte("[]")) //nolint:errcheck
	})
	if _, err := s.Conversation(context.Background(), a, b, 100); err != nil {
		t.Fatalf("Conversation() error: %v", err)
	}
}
