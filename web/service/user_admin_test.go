package service

import (
	"os"
	"testing"

	"github.com/imperiumao/gm-panel/database"
	"github.com/imperiumao/gm-panel/database/model"
	"github.com/imperiumao/gm-panel/logger"
	"github.com/imperiumao/gm-panel/util/crypto"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("GMP_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.DEBUG)
	os.Exit(m.Run())
}

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func TestListUsersPartitionsAndOrder(t *testing.T) {
	setup()
	defer teardown()

	svc := UserAdminService{}

	_, err := svc.CreateUser("zeta", "zeta@example.com", 5, "secret1")
	require.NoError(t, err)
	_, err = svc.CreateUser("alpha", "alpha@example.com", 5, "secret2")
	require.NoError(t, err)
	gone, err := svc.CreateUser("midas", "midas@example.com", 9, "secret3")
	require.NoError(t, err)

	users, err := svc.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)

	// power descending, then username ascending
	assert.Equal(t, "midas", users[0].Username)
	assert.Equal(t, "alpha", users[1].Username)
	assert.Equal(t, "zeta", users[2].Username)

	// the seeded protected accounts never show up
	for _, u := range users {
		assert.False(t, u.Protected)
	}

	_, err = svc.DeleteUser(gone.Id)
	require.NoError(t, err)

	users, err = svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)

	trashed, err := svc.ListTrashedUsers()
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	assert.Equal(t, "midas", trashed[0].Username)
	assert.True(t, trashed[0].DeletedAt.Valid)
}

func TestCreateUserHashesPassword(t *testing.T) {
	setup()
	defer teardown()

	svc := UserAdminService{}

	user, err := svc.CreateUser("newguy", "newguy@example.com", 1, "plaintext")
	require.NoError(t, err)

	stored, err := svc.GetUser(user.Id)
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext", stored.Password)
	assert.True(t, crypto.CheckPasswordHash(stored.Password, "plaintext"))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	setup()
	defer teardown()

	svc := UserAdminService{}

	_, err := svc.CreateUser("dup", "dup@example.com", 1, "secret")
	require.NoError(t, err)

	_, err = svc.CreateUser("dup", "other@example.com", 1, "secret")
	assert.Error(t, err)
}

func TestUpdateUserPasswordHandling(t *testing.T) {
	setup()
	defer teardown()

	svc := UserAdminService{}

	user, err := svc.CreateUser("editme", "editme@example.com", 1, "original")
	require.NoError(t, err)
	originalHash := user.Password

	// empty password keeps the stored hash
	updated, err := svc.UpdateUser(user.Id, "editme", "new@example.com", 3, "")
	require.NoError(t, err)
	assert.Equal(t, originalHash, updated.Password)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, 3, updated.Power)

	// non-empty password is re-hashed and never stored as plaintext
	updated, err = svc.UpdateUser(user.Id, "editme", "new@example.com", 3, "changed")
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, updated.Password)
	assert.NotEqual(t, "changed", updated.Password)
	assert.True(t, crypto.CheckPasswordHash(updated.Password, "changed"))
}

func TestToggleBanTwoStateOnly(t *testing.T) {
	setup()
	defer teardown()

	svc := UserAdminService{}

	user, err := svc.CreateUser("bannable", "b@example.com", 1, "secret")
	require.NoError(t, err)
	require.Equal(t, 0, user.Banned)

	banned, changed, err := svc.ToggleBan(user.Id)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, banned.Banned)

	unbanned, changed, err := svc.ToggleBan(user.Id)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, unbanned.Banned)

	// any other stored value is left untouched
	err = database.GetDB().Model(&model.User{}).Where("id = ?", user.Id).Update("banned", 2).Error
	require.NoError(t, err)

	odd, changed, err := svc.ToggleBan(user.Id)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 2, odd.Banned)
}

func TestDeleteRestoreRoundTrip(t *testing.T) {
	setup()
	defer teardown()

	svc := UserAdminService{}

	user, err := svc.CreateUser("lazarus", "l@example.com", 7, "secret")
	require.NoError(t, err)

	_, err = svc.DeleteUser(user.Id)
	require.NoError(t, err)

	_, err = svc.GetUser(user.Id)
	assert.ErrorIs(t, err, ErrUserNotFound)

	restored, err := svc.RestoreUser(user.Id)
	require.NoError(t, err)
	assert.False(t, restored.DeletedAt.Valid)

	back, err := svc.GetUser(user.Id)
	require.NoError(t, err)
	assert.Equal(t, user.Username, back.Username)
	assert.Equal(t, user.Email, back.Email)
	assert.Equal(t, user.Power, back.Power)
	assert.Equal(t, user.Password, back.Password)
	assert.False(t, back.DeletedAt.Valid)
}

func TestLookupMissingUser(t *testing.T) {
	setup()
	defer teardown()

	svc := UserAdminService{}

	_, err := svc.GetUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.RestoreUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = svc.ToggleBan(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProtectedUserRefusesMutations(t *testing.T) {
	setup()
	defer teardown()

	svc := UserAdminService{}

	var owner model.User
	err := database.GetDB().Where("protected = ?", true).First(&owner).Error
	require.NoError(t, err)

	_, err = svc.UpdateUser(owner.Id, "hacked", "h@example.com", 0, "")
	assert.ErrorIs(t, err, ErrProtectedUser)

	_, err = svc.DeleteUser(owner.Id)
	assert.ErrorIs(t, err, ErrProtectedUser)

	_, _, err = svc.ToggleBan(owner.Id)
	assert.ErrorIs(t, err, ErrProtectedUser)
}
