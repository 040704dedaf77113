package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/licitation-service/internal/domain"
)

// In-memory repository fakes. They mimic the store contract closely
// enough for the service rules: missing rows surface as pgx.ErrNoRows.

type fakeUserRepo struct {
	byID  map[string]*domain.User
	order []string
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.byID[user.ID] = &stored
	f.order = append(f.order, user.ID)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	stored := *user
	f.byID[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, user := range f.byID {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Count(context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

func (f *fakeUserRepo) List(context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(f.order))
	for _, id := range f.order {
		users = append(users, *f.byID[id])
	}
	return users, nil
}

type fakeLicitationRepo struct {
	byID  map[string]*domain.Licitation
	order []string
	seq   int
}

func newFakeLicitationRepo() *fakeLicitationRepo {
	return &fakeLicitationRepo{byID: map[string]*domain.Licitation{}}
}

func (f *fakeLicitationRepo) Create(_ context.Context, licitation *domain.Licitation) error {
	f.seq++
	licitation.ID = fmt.Sprintf("lic-%d", f.seq)
	licitation.CreatedAt = time.Now()
	licitation.UpdatedAt = licitation.CreatedAt
	stored := *licitation
	f.byID[licitation.ID] = &stored
	f.order = append(f.order, licitation.ID)
	return nil
}

func (f *fakeLicitationRepo) Update(_ context.Context, licitation *domain.Licitation) error {
	if _, ok := f.byID[licitation.ID]; !ok {
		return pgx.ErrNoRows
	}
	licitation.UpdatedAt = time.Now()
	stored := *licitation
	f.byID[licitation.ID] = &stored
	return nil
}

func (f *fakeLicitationRepo) GetByID(_ context.Context, id string) (*domain.Licitation, error) {
	licitation, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *licitation
	return &copied, nil
}

func (f *fakeLicitationRepo) List(context.Context) ([]domain.Licitation, error) {
	licitations := make([]domain.Licitation, 0, len(f.order))
	for _, id := range f.order {
		licitations = append(licitations, *f.byID[id])
	}
	return licitations, nil
}

func (f *fakeLicitationRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	for i, stored := range f.order {
		if stored == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}
