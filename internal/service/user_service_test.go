package service

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"noteapp/internal/contract"
	"noteapp/internal/domain/sqlite/repository"
	cognitoclient "noteapp/internal/infrastructure/aws/cognito"
	"noteapp/internal/utils/apierror"
)

const testPassword = "Sup3r$ecret"

// fakeCognito stands in for the identity provider. Errors are injected
// per operation; deletions are recorded to assert the signup revert.
type fakeCognito struct {
	signUpErr  error
	signInErr  error
	confirmErr error
	signUps    []string
	deleted    []string
}

func (f *fakeCognito) SignUp(user *cognitoclient.User) (string, error) {
	if f.signUpErr != nil {
		return "", f.signUpErr
	}
	f.signUps = append(f.signUps, user.Email)
	return "sub-" + user.Email, nil
}

func (f *fakeCognito) SignIn(user *cognitoclient.UserLogin) (*cognitoclient.AuthCreate, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &cognitoclient.AuthCreate{AccessToken: "access", IDToken: "id"}, nil
}

func (f *fakeCognito) GlobalSignOut(accessToken string) error {
	return nil
}

func (f *fakeCognito) ConfirmAccount(user *cognitoclient.UserConfirmation) error {
	return f.confirmErr
}

func (f *fakeCognito) ResendConfirmation(email string) error {
	return nil
}

func (f *fakeCognito) AdminDeleteUser(email string) error {
	f.deleted = append(f.deleted, email)
	return nil
}

func newUserServiceForTest(t *testing.T) (*UserService, *fakeCognito, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	cog := &fakeCognito{}
	svc := NewUserService(repository.NewUserRepository(db), newTestValidator(), cog)
	return svc, cog, db
}

func TestRegisterCreatesLocalUser(t *testing.T) {
	svc, cog, _ := newUserServiceForTest(t)

	apierr := svc.Register(&contract.RegisterRequest{
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Password:    testPassword,
	})
	require.Nil(t, apierr)
	assert.Equal(t, []string{"alice@example.com"}, cog.signUps)

	user, err := svc.UserRepo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "sub-alice@example.com", user.Uid)
	assert.Equal(t, "Alice", user.DisplayName)
	assert.False(t, user.EmailVerified)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, cog, _ := newUserServiceForTest(t)

	req := &contract.RegisterRequest{Email: "alice@example.com", Password: testPassword}
	require.Nil(t, svc.Register(req))

	apierr := svc.Register(req)
	assert.Equal(t, apierror.UserAlreadyExistsError, apierr)
	assert.Len(t, cog.signUps, 1)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, cog, _ := newUserServiceForTest(t)

	apierr := svc.Register(&contract.RegisterRequest{
		Email:    "alice@example.com",
		Password: "alllowercase",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
	assert.Empty(t, cog.signUps)
}

func TestRegisterMapsProviderError(t *testing.T) {
	svc, cog, _ := newUserServiceForTest(t)
	cog.signUpErr = &types.UsernameExistsException{}

	apierr := svc.Register(&contract.RegisterRequest{
		Email:    "alice@example.com",
		Password: testPassword,
	})
	assert.Equal(t, apierror.IDPExistingEmailError, apierr)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)

	_, apierr := svc.Login(&contract.LoginRequest{
		Email:    "ghost@example.com",
		Password: testPassword,
	})
	assert.Equal(t, apierror.IDPUserNotFoundError, apierr)
}

func TestLoginMapsCredentialMismatch(t *testing.T) {
	svc, cog, _ := newUserServiceForTest(t)
	require.Nil(t, svc.Register(&contract.RegisterRequest{Email: "alice@example.com", Password: testPassword}))
	cog.signInErr = &types.NotAuthorizedException{}

	_, apierr := svc.Login(&contract.LoginRequest{
		Email:    "alice@example.com",
		Password: "Wr0ng$password",
	})
	assert.Equal(t, apierror.IDPCredentialsMismatchError, apierr)
}

func TestLoginReturnsTokens(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	require.Nil(t, svc.Register(&contract.RegisterRequest{Email: "alice@example.com", Password: testPassword}))

	resp, apierr := svc.Login(&contract.LoginRequest{
		Email:    "alice@example.com",
		Password: testPassword,
	})
	require.Nil(t, apierr)
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "id", resp.IDToken)
}

func TestConfirmSignupMarksVerified(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	require.Nil(t, svc.Register(&contract.RegisterRequest{Email: "alice@example.com", Password: testPassword}))

	req := &contract.ConfirmSignupRequest{Email: "alice@example.com", Code: "123456"}
	require.Nil(t, svc.ConfirmSignup(req))

	user, err := svc.UserRepo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)

	apierr := svc.ConfirmSignup(req)
	assert.Equal(t, apierror.UserAlreadyConfirmedError, apierr)
}

func TestCheckEmailStatuses(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)

	status, apierr := svc.CheckEmail(&contract.EmailStatusRequest{Email: "alice@example.com"})
	require.Nil(t, apierr)
	assert.Equal(t, contract.EmailStatusAvailable, *status)

	require.Nil(t, svc.Register(&contract.RegisterRequest{Email: "alice@example.com", Password: testPassword}))
	status, apierr = svc.CheckEmail(&contract.EmailStatusRequest{Email: "alice@example.com"})
	require.Nil(t, apierr)
	assert.Equal(t, contract.EmailStatusVerifying, *status)

	require.Nil(t, svc.ConfirmSignup(&contract.ConfirmSignupRequest{Email: "alice@example.com", Code: "123456"}))
	status, apierr = svc.CheckEmail(&contract.EmailStatusRequest{Email: "alice@example.com"})
	require.Nil(t, apierr)
	assert.Equal(t, contract.EmailStatusExists, *status)
}

func TestSearchUsersExcludesRequester(t *testing.T) {
	svc, _, db := newUserServiceForTest(t)

	john := createTestUser(t, db, "john@example.com", "John")
	createTestUser(t, db, "joan@example.com", "Joan")
	createTestUser(t, db, "jonas@example.com", "Jonas")
	createTestUser(t, db, "mary@example.com", "Mary Jones")

	results, apierr := svc.SearchUsers(john, "jo")
	require.Nil(t, apierr)
	require.Len(t, results, 3)
	for _, res := range results {
		assert.NotEqual(t, john.Email, res.Email)
	}
}

func TestSearchUsersShortQuery(t *testing.T) {
	svc, _, db := newUserServiceForTest(t)
	actor := createTestUser(t, db, "john@example.com", "John")
	createTestUser(t, db, "joan@example.com", "Joan")

	results, apierr := svc.SearchUsers(actor, "j")
	require.Nil(t, apierr)
	assert.Empty(t, results)

	results, apierr = svc.SearchUsers(actor, "  j  ")
	require.Nil(t, apierr)
	assert.Empty(t, results)
}

func TestSearchUsersLimited(t *testing.T) {
	svc, _, db := newUserServiceForTest(t)
	actor := createTestUser(t, db, "me@example.com", "Me")

	emails := []string{
		"dev1@example.com", "dev2@example.com", "dev3@example.com",
		"dev4@example.com", "dev5@example.com", "dev6@example.com",
		"dev7@example.com",
	}
	for _, email := range emails {
		createTestUser(t, db, email, "Dev")
	}

	results, apierr := svc.SearchUsers(actor, "dev")
	require.Nil(t, apierr)
	assert.Len(t, results, searchResultLimit)
}
