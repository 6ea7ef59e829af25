// internal/app/system/board/board_test.go
package board

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/redescolar/cartelera/internal/app/system/policy"
)

// countingNotifier records fan-out calls so tests can assert that a
// rejected mutation never signals a change.
type countingNotifier struct {
	keys []string
}

func (n *countingNotifier) Notify(key string) {
	n.keys = append(n.keys, key)
}

func estudiante() policy.Identity {
	return policy.Identity{
		UID:    "uid-estudiante",
		Nombre: "Valentina Ríos",
		Rol:    policy.RolEstudiante,
		Cargo:  policy.CargoNinguno,
	}
}

// The coordinator is built with nil stores on purpose: every rejection
// under test must happen before any store call, so a touched store
// panics the test.
func rejectOnly(n *countingNotifier) *Coordinator {
	return NewCoordinator(nil, nil, nil, n, zap.NewNop())
}

func TestPublishPostDeniedForStudents(t *testing.T) {
	n := &countingNotifier{}
	c := rejectOnly(n)

	_, err := c.PublishPost(context.Background(), estudiante(), "Hola a todos")
	if !errors.Is(err, ErrPolicyDenied) {
		t.Fatalf("PublishPost err = %v, want ErrPolicyDenied", err)
	}
	if len(n.keys) != 0 {
		t.Fatalf("notifier called %v, want no calls", n.keys)
	}
}

func TestPublishPostRejectsEmptyText(t *testing.T) {
	n := &countingNotifier{}
	c := rejectOnly(n)

	caller := estudiante()
	caller.Cargo = policy.CargoPersonero

	for _, texto := range []string{"", "   ", "<script>alert(1)</script>"} {
		if _, err := c.PublishPost(context.Background(), caller, texto); !errors.Is(err, ErrEmptyText) {
			t.Errorf("PublishPost(%q) err = %v, want ErrEmptyText", texto, err)
		}
	}
	if len(n.keys) != 0 {
		t.Fatalf("notifier called %v, want no calls", n.keys)
	}
}

func TestDeletePostDeniedForStudents(t *testing.T) {
	n := &countingNotifier{}
	c := rejectOnly(n)

	err := c.DeletePost(context.Background(), estudiante(), primitive.NewObjectID())
	if !errors.Is(err, ErrPolicyDenied) {
		t.Fatalf("DeletePost err = %v, want ErrPolicyDenied", err)
	}
	if len(n.keys) != 0 {
		t.Fatalf("notifier called %v, want no calls", n.keys)
	}
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	n := &countingNotifier{}
	c := rejectOnly(n)

	err := c.AddComment(context.Background(), estudiante(), primitive.NewObjectID(), "  ")
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("AddComment err = %v, want ErrEmptyText", err)
	}
	if len(n.keys) != 0 {
		t.Fatalf("notifier called %v, want no calls", n.keys)
	}
}

func TestSubmitSuggestionRejectsEmptyText(t *testing.T) {
	n := &countingNotifier{}
	c := rejectOnly(n)

	err := c.SubmitSuggestion(context.Background(), estudiante(), "")
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("SubmitSuggestion err = %v, want ErrEmptyText", err)
	}
	if len(n.keys) != 0 {
		t.Fatalf("notifier called %v, want no calls", n.keys)
	}
}

func TestSetPhotoURLOwnerOnly(t *testing.T) {
	n := &countingNotifier{}
	c := rejectOnly(n)

	err := c.SetPhotoURL(context.Background(), estudiante(), "uid-otro", "https://cdn.example/foto.png")
	if !errors.Is(err, ErrPolicyDenied) {
		t.Fatalf("SetPhotoURL err = %v, want ErrPolicyDenied", err)
	}
	if len(n.keys) != 0 {
		t.Fatalf("notifier called %v, want no calls", n.keys)
	}
}
