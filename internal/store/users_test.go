package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/models"
)

func seedUser(t *testing.T, st *Store, phone, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Phone:        phone,
		Email:        email,
		PasswordHash: "hash",
	}
	require.NoError(t, st.CreateUser(user))
	return user
}

func TestCreateUser_ActivatesAndLooksUpByPhone(t *testing.T) {
	st := newTestStore(t)
	user := seedUser(t, st, "+998901112233", "u@x.com")

	assert.True(t, user.IsActive)

	got, err := st.GetUserByPhone("+998901112233")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = st.GetUserByPhone("+998900000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetUserByEmail_IgnoresInactiveUsers(t *testing.T) {
	st := newTestStore(t)
	user := seedUser(t, st, "+998901112233", "u@x.com")

	found, err := st.UpdateUser(user.ID, map[string]interface{}{"is_active": false})
	require.NoError(t, err)
	require.True(t, found)

	_, err = st.GetUserByEmail("u@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateUserPassword_ReportsMatch(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "+998901112233", "u@x.com")

	found, err := st.UpdateUserPassword("u@x.com", "newhash")
	require.NoError(t, err)
	assert.True(t, found)

	got, err := st.GetUserByEmail("u@x.com")
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.PasswordHash)

	found, err = st.UpdateUserPassword("nobody@x.com", "newhash")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteAccount_CascadesOwnedRecords(t *testing.T) {
	st := newTestStore(t)
	user := seedUser(t, st, "+998901112233", "u@x.com")

	order := seedOrder(t, st, &user.ID)
	seedCard(t, st, user.ID, "HOLDER", true)
	require.NoError(t, st.CreateResetCode(&models.PasswordResetCode{
		Email: user.Email,
		Code:  "1234",
	}))

	// An unrelated user's data must survive the cascade.
	other := seedUser(t, st, "+998905556677", "other@x.com")
	otherOrder := seedOrder(t, st, &other.ID)

	require.NoError(t, st.DeleteAccount(user.ID))

	_, err := st.GetUser(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = st.GetOrder(order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var items int64
	require.NoError(t, st.DB().Model(&models.OrderItem{}).
		Where("order_id = ?", order.ID).Count(&items).Error)
	assert.Zero(t, items)

	cards, err := st.ListCards(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cards)

	code, err := st.LatestResetCode(user.Email)
	require.NoError(t, err)
	assert.Nil(t, code)

	_, err = st.GetOrder(otherOrder.ID)
	assert.NoError(t, err)
}

func TestDeleteAccount_MissingUserLeavesDataIntact(t *testing.T) {
	st := newTestStore(t)
	user := seedUser(t, st, "+998901112233", "u@x.com")
	seedOrder(t, st, &user.ID)

	err := st.DeleteAccount(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	orders, err := st.ListOrdersByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
