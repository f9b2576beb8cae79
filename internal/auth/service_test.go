package auth_test

import (
	"testing"

	"makeitall-backend/internal/auth"
	"makeitall-backend/internal/database/models"
	apperrors "makeitall-backend/internal/errors"
	"makeitall-backend/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockUserRepo *mocks.MockUserRepositoryInterface
	authService  *auth.AuthService

	user     *models.User
	password string
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)

	cfg := &auth.AuthConfig{
		JWTSecret:       "test-secret",
		Issuer:          "makeitall-backend",
		Audience:        "makeitall",
		TokenTTLMinutes: 60,
	}
	service, err := auth.NewAuthService(cfg, suite.mockUserRepo)
	require.NoError(suite.T(), err)
	suite.authService = service

	suite.password = "correct horse battery staple"
	hash, err := auth.HashPassword(suite.password)
	require.NoError(suite.T(), err)
	suite.user = &models.User{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Email:        "dev@test.com",
		Name:         "Dev",
		Role:         models.UserRoleTeamMember,
		PasswordHash: hash,
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	suite.mockUserRepo.EXPECT().GetByEmail(suite.user.Email).Return(suite.user, nil)

	token, identity, err := suite.authService.Login(suite.user.Email, suite.password)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), token)
	assert.Equal(suite.T(), suite.user.ID, identity.ID)
	assert.Equal(suite.T(), suite.user.Role, identity.Role)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	suite.mockUserRepo.EXPECT().GetByEmail(suite.user.Email).Return(suite.user, nil)

	token, identity, err := suite.authService.Login(suite.user.Email, "wrong")

	assert.Empty(suite.T(), token)
	assert.Nil(suite.T(), identity)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUser() {
	suite.mockUserRepo.EXPECT().GetByEmail("ghost@test.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := suite.authService.Login("ghost@test.com", suite.password)

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveUserRejected() {
	suite.user.IsActive = false
	suite.mockUserRepo.EXPECT().GetByEmail(suite.user.Email).Return(suite.user, nil)

	_, _, err := suite.authService.Login(suite.user.Email, suite.password)

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestTokenRoundTrip() {
	identity := &auth.Identity{
		ID:    suite.user.ID,
		Email: suite.user.Email,
		Name:  suite.user.Name,
		Role:  models.UserRoleManager,
	}

	token, err := suite.authService.IssueToken(identity)
	require.NoError(suite.T(), err)

	claims, err := suite.authService.ValidateJWT(token)
	require.NoError(suite.T(), err)

	restored, err := suite.authService.IdentityFromClaims(claims)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), identity.ID, restored.ID)
	assert.Equal(suite.T(), identity.Email, restored.Email)
	assert.Equal(suite.T(), models.UserRoleManager, restored.Role)
	assert.True(suite.T(), restored.IsManager())
}

func (suite *AuthServiceTestSuite) TestValidateJWT_TamperedTokenRejected() {
	identity := &auth.Identity{ID: suite.user.ID, Email: suite.user.Email, Role: models.UserRoleTeamMember}
	token, err := suite.authService.IssueToken(identity)
	require.NoError(suite.T(), err)

	_, err = suite.authService.ValidateJWT(token + "x")

	assert.Error(suite.T(), err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
