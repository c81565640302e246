package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/core/services"
	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/SscSPs/club_finance_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	ctx      context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) TestCreateUser() {
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "tesoureiro").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "tesoureiro" && utils.CheckPasswordHash("s3cret-pass", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Username: " Tesoureiro ", Password: "s3cret-pass", Name: "Tesoureiro"})

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_Duplicate() {
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "admin").Return(&domain.User{UserID: "u1"}, nil).Once()

	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Username: "admin", Password: "s3cret-pass"})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestCreateUser_WeakPassword() {
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "admin").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Username: "admin", Password: "short"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "u1", Username: "admin", PasswordHash: hash}
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "admin").Return(stored, nil).Times(2)
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(suite.ctx, "Admin", "s3cret-pass")
	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)

	_, err = suite.service.AuthenticateUser(suite.ctx, "admin", "wrong-pass")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(suite.ctx, "nobody", "whatever")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	suite.mockRepo.On("FindUserByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetUserByID(suite.ctx, "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
