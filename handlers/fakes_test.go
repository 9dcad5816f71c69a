package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeep/apperr"
	"notekeep/models"
)

// fakeUsers is an in-memory UserStore. pushErr/pullErr simulate a failure
// on the second write of the non-atomic create/delete sequences.
type fakeUsers struct {
	users   map[primitive.ObjectID]*models.User
	calls   int
	pushErr error
	pullErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.calls++
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.calls++
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Insert(_ context.Context, u *models.User) error {
	f.calls++
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return apperr.ErrEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	if u.Notes == nil {
		u.Notes = []primitive.ObjectID{}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) PushNote(_ context.Context, userID, noteID primitive.ObjectID) error {
	f.calls++
	if f.pushErr != nil {
		return f.pushErr
	}
	u, ok := f.users[userID]
	if !ok {
		return apperr.ErrNotFound
	}
	u.Notes = append(u.Notes, noteID)
	return nil
}

func (f *fakeUsers) PullNote(_ context.Context, userID, noteID primitive.ObjectID) error {
	f.calls++
	if f.pullErr != nil {
		return f.pullErr
	}
	u, ok := f.users[userID]
	if !ok {
		return apperr.ErrNotFound
	}
	kept := u.Notes[:0]
	for _, id := range u.Notes {
		if id != noteID {
			kept = append(kept, id)
		}
	}
	u.Notes = kept
	return nil
}

// ownedNotes returns the stored owned-notes list for a user.
func (f *fakeUsers) ownedNotes(userID primitive.ObjectID) []primitive.ObjectID {
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	return u.Notes
}

// fakeNotes is an in-memory NoteStore preserving insertion order.
type fakeNotes struct {
	notes []*models.Note
	calls int
}

func newFakeNotes() *fakeNotes { return &fakeNotes{} }

func (f *fakeNotes) Insert(_ context.Context, n *models.Note) error {
	f.calls++
	now := time.Now().UTC()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = now
	n.UpdatedAt = now
	cp := *n
	f.notes = append(f.notes, &cp)
	return nil
}

func (f *fakeNotes) FindByIDAndOwner(_ context.Context, id, owner primitive.ObjectID) (*models.Note, error) {
	f.calls++
	for _, n := range f.notes {
		if n.ID == id && n.User == owner {
			cp := *n
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeNotes) FindAllByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Note, error) {
	f.calls++
	out := []models.Note{}
	for _, n := range f.notes {
		if n.User == owner {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotes) UpdateByIDAndOwner(_ context.Context, id, owner primitive.ObjectID, title, content string) (*models.Note, error) {
	f.calls++
	for _, n := range f.notes {
		if n.ID == id && n.User == owner {
			n.Title = title
			n.Content = content
			n.UpdatedAt = time.Now().UTC()
			cp := *n
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeNotes) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	f.calls++
	for i, n := range f.notes {
		if n.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (f *fakeNotes) byID(id primitive.ObjectID) *models.Note {
	for _, n := range f.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
