package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"noteapp/internal/contract"
	"noteapp/internal/domain/entity"
	cognitoclient "noteapp/internal/infrastructure/aws/cognito"
	"noteapp/internal/utils"
	"noteapp/internal/utils/apierror"
	"noteapp/internal/utils/uid"
)

// searchResultLimit caps directory search results for the share-target
// autocomplete.
const searchResultLimit = 5

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	FindBySub(sub string) (*entity.User, error)
	ExistsByEmail(email string) (bool, error)
	Search(query string, excludeID int64, limit int) ([]*entity.User, error)
	Save(user *entity.User) error
}

type UserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
	Cognito  cognitoclient.CognitoInterface
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, cogClient cognitoclient.CognitoInterface) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Validate: validate,
		Cognito:  cogClient,
	}
}

// Register creates the user on the identity provider and mirrors it into
// our database. The IdP user is reverted if the local write fails, so a
// retry does not trip over a half-created account.
func (u *UserService) Register(req *contract.RegisterRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	found, err := u.UserRepo.ExistsByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return apierror.InternalServerError
	}

	if found {
		return apierror.UserAlreadyExistsError
	}

	cogUser := &cognitoclient.User{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	}
	sub, apierr, revert := handleUserSignup(u.Cognito, cogUser)
	if apierr != nil {
		return apierr
	}

	now := utils.NowUTC()
	user := &entity.User{
		ID:          uid.Generate(),
		Uid:         sub,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.UserRepo.Save(user); err != nil {
		revert()
		log.Errorf("failed to create user: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (u *UserService) Login(req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse) {
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.IDPUserNotFoundError
	}

	credentials := &cognitoclient.UserLogin{
		Email:    req.Email,
		Password: req.Password,
	}

	auth, apierr := handleUserSignin(u.Cognito, credentials)
	if apierr != nil {
		return nil, apierr
	}
	return &contract.LoginResponse{AccessToken: auth.AccessToken, IDToken: auth.IDToken}, nil
}

// Logout invalidates every session of the user on the identity provider.
func (u *UserService) Logout(req *contract.LogoutRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	if err := u.Cognito.GlobalSignOut(req.AccessToken); err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}

func (u *UserService) ConfirmSignup(req *contract.ConfirmSignupRequest) apierror.ErrorResponse {
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return apierror.InternalServerError
	}

	if user == nil {
		return apierror.IDPUserNotFoundError
	}

	if user.EmailVerified {
		return apierror.UserAlreadyConfirmedError
	}

	confirm := &cognitoclient.UserConfirmation{
		Email: req.Email,
		Code:  req.Code,
	}

	if err := u.Cognito.ConfirmAccount(confirm); err != nil {
		return utils.MapCognitoError(err)
	}

	user.EmailVerified = true
	user.UpdatedAt = utils.NowUTC()
	if err := u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to update user (%d) verified status: %v", user.ID, err)
	}
	return nil
}

func (u *UserService) ResendConfirmation(req *contract.ResendConfirmRequest) apierror.ErrorResponse {
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to find user (%s) by email: %v", req.Email, err)
		return apierror.InternalServerError
	}

	if user == nil {
		return apierror.IDPUserNotFoundError
	}

	if user.EmailVerified {
		return apierror.UserAlreadyConfirmedError
	}

	if err := u.Cognito.ResendConfirmation(req.Email); err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}

func (u *UserService) CheckEmail(req *contract.EmailStatusRequest) (*contract.EmailStatus, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	var status contract.EmailStatus
	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check if user (%s) exists: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	switch {
	case user == nil:
		status = contract.EmailStatusAvailable
	case !user.EmailVerified:
		status = contract.EmailStatusVerifying
	default:
		status = contract.EmailStatusExists
	}
	return &status, nil
}

// GetProfile returns the actor's own profile. The verified token claims
// win over whatever we have stored locally; the local row only fills the
// gaps and the timestamps.
func (u *UserService) GetProfile(actor *entity.User, token *utils.TokenData) *contract.ProfileResponse {
	resp := &contract.ProfileResponse{
		Uid:         actor.Uid,
		Email:       actor.Email,
		DisplayName: actor.DisplayName,
		PhotoURL:    actor.PhotoURL,
		CreatedAt:   utils.FormatEpoch(actor.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(actor.UpdatedAt),
	}

	if token == nil {
		return resp
	}

	if token.Email != "" {
		resp.Email = token.Email
	}
	if token.Name != "" {
		resp.DisplayName = token.Name
	}
	if token.PhotoURL != "" {
		resp.PhotoURL = token.PhotoURL
	}
	return resp
}

// SearchUsers powers the share-target autocomplete: a case-insensitive
// substring match over email and display name, never including the
// requester. Queries shorter than two characters are not yet a
// meaningful search and return an empty list.
func (u *UserService) SearchUsers(actor *entity.User, query string) ([]*contract.UserSummary, apierror.ErrorResponse) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []*contract.UserSummary{}, nil
	}

	users, err := u.UserRepo.Search(query, actor.ID, searchResultLimit)
	if err != nil {
		log.Errorf("failed to search users for %q: %v", query, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.UserSummary, len(users))
	for i, user := range users {
		resp[i] = toUserSummary(user)
	}
	return resp, nil
}

func handleUserSignup(cogClient cognitoclient.CognitoInterface, req *cognitoclient.User) (string, apierror.ErrorResponse, func()) {
	revert := func() {
		_ = cogClient.AdminDeleteUser(req.Email)
	}

	sub, err := cogClient.SignUp(req)
	if err != nil {
		return "", utils.MapCognitoError(err), revert
	}
	return sub, nil, revert
}

func handleUserSignin(cogClient cognitoclient.CognitoInterface, req *cognitoclient.UserLogin) (*cognitoclient.AuthCreate, apierror.ErrorResponse) {
	auth, err := cogClient.SignIn(req)
	if err != nil {
		return nil, utils.MapCognitoError(err)
	}
	return auth, nil
}
