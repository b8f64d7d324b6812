package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/testutil"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubRecipes serves author recipes straight from the recipes table.
type stubRecipes struct {
	db *gorm.DB
}

func (s stubRecipes) GetRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	q := s.db.WithContext(ctx).Where("author_id = ?", authorID).Order("pub_date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return recipes, q.Find(&recipes).Error
}

func (s stubRecipes) CountRecipesByAuthor(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := map[uuid.UUID]int64{}
	for _, id := range authorIDs {
		var n int64
		if err := s.db.WithContext(ctx).Model(&entities.Recipe{}).Where("author_id = ?", id).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, nil
}

type fixture struct {
	db      *gorm.DB
	service UserService
	jwt     jwt.JWTService
	s3      *storage.Memory
	mailer  *testutil.Mailer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := fixture{
		db:     db,
		jwt:    jwt.NewJWTService("user-test-secret", time.Hour),
		s3:     storage.NewMemory("http://media.test"),
		mailer: &testutil.Mailer{},
	}
	f.service = NewUserService(NewUserRepository(db), stubRecipes{db: db}, f.jwt, f.s3, f.mailer)
	return f
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := domain.RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Julia",
		LastName:  "Child",
		Password:  "very-secret",
	}
	res, err := f.service.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "cook", res.Username)
	assert.NotEmpty(t, res.ID)

	var stored entities.User
	require.NoError(t, f.db.Where("email = ?", "cook@example.com").First(&stored).Error)
	assert.NotEqual(t, "very-secret", stored.Password)
	assert.Equal(t, domain.RoleUser, stored.Role)

	t.Run("duplicate email", func(t *testing.T) {
		dup := req
		dup.Username = "other"
		dup.Email = "COOK@example.com"
		_, err := f.service.Register(ctx, dup)
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := req
		dup.Email = "other@example.com"
		_, err := f.service.Register(ctx, dup)
		assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
	})
}

func TestLoginLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, f.db, "alice")

	_, err := f.service.Login(ctx, domain.LoginRequest{Email: u.Email, Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.service.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: testutil.Password})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	res, err := f.service.Login(ctx, domain.LoginRequest{Email: u.Email, Password: testutil.Password})
	require.NoError(t, err)
	require.NotEmpty(t, res.AuthToken)

	claims, err := f.jwt.GetClaimsByToken(res.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)

	revoked, err := f.service.IsTokenRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, f.service.Logout(ctx, res.AuthToken))

	revoked, err = f.service.IsTokenRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, f.service.Logout(ctx, res.AuthToken), domain.ErrTokenRevoked)
}

func TestSetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, f.db, "bob")

	err := f.service.SetPassword(ctx, u.ID.String(), domain.SetPasswordRequest{
		CurrentPassword: "not-it",
		NewPassword:     "brand-new-pass",
	})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	err = f.service.SetPassword(ctx, u.ID.String(), domain.SetPasswordRequest{
		CurrentPassword: testutil.Password,
		NewPassword:     testutil.Password,
	})
	assert.ErrorIs(t, err, domain.ErrSamePassword)

	err = f.service.SetPassword(ctx, u.ID.String(), domain.SetPasswordRequest{
		CurrentPassword: testutil.Password,
		NewPassword:     "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = f.service.Login(ctx, domain.LoginRequest{Email: u.Email, Password: "brand-new-pass"})
	assert.NoError(t, err)

	require.Len(t, f.mailer.Sent, 1)
	assert.Equal(t, u.Email, f.mailer.Sent[0].To)
	assert.Contains(t, f.mailer.Sent[0].Body, "bob")
}

func TestAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, f.db, "carol")

	assert.ErrorIs(t, f.service.DeleteAvatar(ctx, u.ID.String()), domain.ErrNoAvatar)

	_, err := f.service.UpdateAvatar(ctx, u.ID.String(), domain.AvatarRequest{Avatar: "not an image"})
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	res, err := f.service.UpdateAvatar(ctx, u.ID.String(), domain.AvatarRequest{Avatar: testutil.OnePixelPNG})
	require.NoError(t, err)

	key := testutil.ObjectKey(f.s3, res.Avatar)
	require.NotEmpty(t, key)
	assert.True(t, f.s3.Has(key))

	me, err := f.service.Me(ctx, u.ID.String())
	require.NoError(t, err)
	require.NotNil(t, me.Avatar)
	assert.Equal(t, res.Avatar, *me.Avatar)

	require.NoError(t, f.service.DeleteAvatar(ctx, u.ID.String()))
	assert.False(t, f.s3.Has(key))

	me, err = f.service.Me(ctx, u.ID.String())
	require.NoError(t, err)
	assert.Nil(t, me.Avatar)
}

func TestSubscriptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := testutil.CreateUser(t, f.db, "reader")
	author := testutil.CreateUser(t, f.db, "author")
	testutil.CreateRecipe(t, f.db, author, "Soup")
	testutil.CreateRecipe(t, f.db, author, "Salad")
	testutil.CreateRecipe(t, f.db, author, "Stew")

	t.Run("self subscription is rejected", func(t *testing.T) {
		_, err := f.service.Subscribe(ctx, reader.ID.String(), reader.ID.String(), 0)
		assert.ErrorIs(t, err, domain.ErrSelfSubscription)
	})

	t.Run("unknown author", func(t *testing.T) {
		_, err := f.service.Subscribe(ctx, uuid.NewString(), reader.ID.String(), 0)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = f.service.Subscribe(ctx, "42", reader.ID.String(), 0)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	res, err := f.service.Subscribe(ctx, author.ID.String(), reader.ID.String(), 2)
	require.NoError(t, err)
	assert.True(t, res.IsSubscribed)
	assert.EqualValues(t, 3, res.RecipesCount)
	assert.Len(t, res.Recipes, 2)

	_, err = f.service.Subscribe(ctx, author.ID.String(), reader.ID.String(), 0)
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	view, err := f.service.GetUser(ctx, author.ID.String(), reader.ID.String())
	require.NoError(t, err)
	assert.True(t, view.IsSubscribed)

	view, err = f.service.GetUser(ctx, author.ID.String(), "")
	require.NoError(t, err)
	assert.False(t, view.IsSubscribed)

	subs, meta, err := f.service.GetSubscriptions(ctx, reader.ID.String(), domain.PaginationRequest{Page: 1, Limit: 6}, 0)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, author.ID.String(), subs[0].ID)
	assert.Len(t, subs[0].Recipes, 3)
	assert.EqualValues(t, 1, meta.Total)

	require.NoError(t, f.service.Unsubscribe(ctx, author.ID.String(), reader.ID.String()))
	assert.ErrorIs(t, f.service.Unsubscribe(ctx, author.ID.String(), reader.ID.String()), domain.ErrSubscriptionNotFound)
}

func TestGetUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	viewer := testutil.CreateUser(t, f.db, "viewer")
	followed := testutil.CreateUser(t, f.db, "followed")
	testutil.CreateUser(t, f.db, "stranger")

	_, err := f.service.Subscribe(ctx, followed.ID.String(), viewer.ID.String(), 0)
	require.NoError(t, err)

	users, meta, err := f.service.GetUsers(ctx, domain.PaginationRequest{Page: 1, Limit: 2}, viewer.ID.String())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.EqualValues(t, 3, meta.Total)
	assert.EqualValues(t, 2, meta.TotalPages)

	users, _, err = f.service.GetUsers(ctx, domain.PaginationRequest{Page: 1, Limit: 10}, viewer.ID.String())
	require.NoError(t, err)
	for _, u := range users {
		assert.Equal(t, u.ID == followed.ID.String(), u.IsSubscribed, u.Username)
	}
}

// staleUsers answers the first skip existence checks with false, like a
// registration racing another one between its checks and its insert.
type staleUsers struct {
	UserRepository
	skip int
}

func (r *staleUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r.skip > 0 {
		r.skip--
		return false, nil
	}
	return r.UserRepository.ExistsByEmail(ctx, email)
}

func (r *staleUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if r.skip > 0 {
		r.skip--
		return false, nil
	}
	return r.UserRepository.ExistsByUsername(ctx, username)
}

func TestRegisterConflictNamesField(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.db, "taken")

	tests := []struct {
		name     string
		req      domain.RegisterRequest
		field    string
		sentinel error
	}{
		{
			name:     "username",
			req:      domain.RegisterRequest{Email: "fresh@example.com", Username: "taken", FirstName: "A", LastName: "B", Password: "pw"},
			field:    "username",
			sentinel: domain.ErrUsernameAlreadyExists,
		},
		{
			name:     "email",
			req:      domain.RegisterRequest{Email: "taken@example.com", Username: "fresh", FirstName: "A", LastName: "B", Password: "pw"},
			field:    "email",
			sentinel: domain.ErrEmailAlreadyExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &staleUsers{UserRepository: NewUserRepository(f.db), skip: 2}
			service := NewUserService(repo, stubRecipes{db: f.db}, f.jwt, f.s3, f.mailer)

			_, err := service.Register(ctx, tt.req)
			assert.ErrorIs(t, err, tt.sentinel)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

// staleFollows never sees an existing subscription, so every subscribe
// reaches the unique index.
type staleFollows struct {
	UserRepository
}

func (staleFollows) IsFollowing(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func TestConcurrentSubscribe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	service := NewUserService(staleFollows{NewUserRepository(f.db)}, stubRecipes{db: f.db}, f.jwt, f.s3, f.mailer)

	author := testutil.CreateUser(t, f.db, "author")
	reader := testutil.CreateUser(t, f.db, "reader")

	const callers = 4
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = service.Subscribe(ctx, author.ID.String(), reader.ID.String(), 0)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, f.db.Model(&entities.UserFollow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
