package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/finwise/finance-insights-api/infrastructure/repository"
	"github.com/finwise/finance-insights-api/infrastructure/repository/mocks"
	"github.com/finwise/finance-insights-api/internal/config"
	"github.com/finwise/finance-insights-api/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{
			Secret:        "test-secret",
			TokenTTLHours: 24,
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	return string(hash)
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		setup    func()
		validate func(t *testing.T, user *domain.User, err error)
	}{
		{
			name:     "Cadastro válido - deve normalizar email e limpar hash da resposta",
			userName: "Priya Sharma",
			email:    "  Priya.Sharma@Example.com ",
			password: "str0ngpass",
			setup: func() {
				mockUserRepo.EXPECT().
					GetByEmail("priya.sharma@example.com").
					Return(nil, nil)

				mockUserRepo.EXPECT().
					Create(gomock.Any()).
					DoAndReturn(func(user *domain.User) error {
						assert.NotEmpty(t, user.ID)
						assert.Equal(t, "priya.sharma@example.com", user.Email)
						assert.NotEmpty(t, user.PasswordHash)
						assert.True(t, user.Active)
						return nil
					})
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "Priya Sharma", user.Name)
				assert.Empty(t, user.PasswordHash)
			},
		},
		{
			name:     "Senha curta - deve retornar erro de senha fraca",
			userName: "Priya Sharma",
			email:    "priya@example.com",
			password: "abc1",
			setup:    func() {},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.Error(t, err)
				assert.Nil(t, user)

				var authErr *AuthError
				assert.ErrorAs(t, err, &authErr)
				assert.Equal(t, "AUTH_008", authErr.Code)
			},
		},
		{
			name:     "Senha sem números - deve retornar erro de senha fraca",
			userName: "Priya Sharma",
			email:    "priya@example.com",
			password: "onlyletters",
			setup:    func() {},
			validate: func(t *testing.T, user *domain.User, err error) {
				var authErr *AuthError
				assert.ErrorAs(t, err, &authErr)
				assert.Equal(t, "AUTH_008", authErr.Code)
			},
		},
		{
			name:     "Email já cadastrado - deve retornar erro de usuário existente",
			userName: "Priya Sharma",
			email:    "priya@example.com",
			password: "str0ngpass",
			setup: func() {
				mockUserRepo.EXPECT().
					GetByEmail("priya@example.com").
					Return(&domain.User{ID: "user-1", Email: "priya@example.com"}, nil)
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrUserAlreadyExists)
				assert.Nil(t, user)
			},
		},
		{
			name:     "Corrida de cadastro - violação de unicidade vira erro de usuário existente",
			userName: "Priya Sharma",
			email:    "priya@example.com",
			password: "str0ngpass",
			setup: func() {
				mockUserRepo.EXPECT().
					GetByEmail("priya@example.com").
					Return(nil, nil)

				mockUserRepo.EXPECT().
					Create(gomock.Any()).
					Return(repository.ErrDuplicateEmail)
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrUserAlreadyExists)
				assert.Nil(t, user)
			},
		},
		{
			name:     "Campos obrigatórios ausentes - deve retornar erro",
			userName: "",
			email:    "priya@example.com",
			password: "str0ngpass",
			setup:    func() {},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
				assert.Nil(t, user)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			user, err := service.Register(tt.userName, tt.email, tt.password)

			tt.validate(t, user, err)
		})
	}
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	activeUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           "user-1",
			Name:         "Priya Sharma",
			Email:        "priya@example.com",
			PasswordHash: hashPassword(t, "str0ngpass"),
			Active:       true,
		}
	}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func()
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:     "Credenciais válidas - deve emitir token com claims do usuário",
			email:    "priya@example.com",
			password: "str0ngpass",
			setup: func() {
				mockUserRepo.EXPECT().
					GetByEmail("priya@example.com").
					Return(activeUser(t), nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)

				claims, err := service.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, "user-1", claims.UserID)
				assert.Equal(t, "priya@example.com", claims.UserEmail)
			},
		},
		{
			name:     "Senha incorreta - deve retornar erro de credenciais",
			email:    "priya@example.com",
			password: "wrongpass1",
			setup: func() {
				mockUserRepo.EXPECT().
					GetByEmail("priya@example.com").
					Return(activeUser(t), nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Empty(t, token)

				var authErr *AuthError
				assert.ErrorAs(t, err, &authErr)
				assert.Equal(t, "user-1", authErr.UserID)
			},
		},
		{
			name:     "Conta desativada - deve retornar erro de usuário desativado",
			email:    "priya@example.com",
			password: "str0ngpass",
			setup: func() {
				user := activeUser(t)
				user.Active = false

				mockUserRepo.EXPECT().
					GetByEmail("priya@example.com").
					Return(user, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserDisabled)
				assert.Empty(t, token)
			},
		},
		{
			name:     "Usuário inexistente - deve retornar erro de não encontrado",
			email:    "ninguem@example.com",
			password: "str0ngpass",
			setup: func() {
				mockUserRepo.EXPECT().
					GetByEmail("ninguem@example.com").
					Return(nil, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserNotFound)
				assert.Empty(t, token)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			token, err := service.Login(tt.email, tt.password)

			tt.validate(t, token, err)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	t.Run("Token malformado - deve retornar erro", func(t *testing.T) {
		claims, err := service.ValidateToken("not-a-jwt")

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Token assinado com outro segredo - deve retornar erro", func(t *testing.T) {
		otherService := NewService(mockUserRepo, &config.Config{
			Auth: config.Auth{Secret: "other-secret", TokenTTLHours: 24},
		})

		mockUserRepo.EXPECT().
			GetByEmail("priya@example.com").
			Return(&domain.User{
				ID:           "user-1",
				Email:        "priya@example.com",
				PasswordHash: hashPassword(t, "str0ngpass"),
				Active:       true,
			}, nil)

		token, err := otherService.Login("priya@example.com", "str0ngpass")
		assert.NoError(t, err)

		claims, err := service.ValidateToken(token)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestService_GetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	t.Run("Usuário existente - deve retornar perfil sem hash de senha", func(t *testing.T) {
		mockUserRepo.EXPECT().
			GetByID("user-1").
			Return(&domain.User{
				ID:           "user-1",
				Name:         "Priya Sharma",
				Email:        "priya@example.com",
				PasswordHash: "hash",
				Active:       true,
			}, nil)

		user, err := service.GetProfile("user-1")

		assert.NoError(t, err)
		assert.Equal(t, "Priya Sharma", user.Name)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Usuário inexistente - deve retornar erro de não encontrado", func(t *testing.T) {
		mockUserRepo.EXPECT().
			GetByID("user-missing").
			Return(nil, nil)

		user, err := service.GetProfile("user-missing")

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, user)
	})
}
