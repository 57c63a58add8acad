package mockapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/themirmakhmudov/lms-cli/internal/fixture"
	"github.com/themirmakhmudov/lms-cli/internal/model"
)

const contextKeyUser = "user"

// demoPassword is the seeded password for the fixture demo user.
const demoPassword = "demo1234"

var errUserExists = errors.New("user already exists")

// userStore is the in-memory account registry.
type userStore struct {
	mu     sync.Mutex
	byName map[string]*account
	nextID int
}

type account struct {
	user model.User
	hash []byte
}

func newUserStore() *userStore {
	hash, _ := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	return &userStore{
		byName: map[string]*account{
			fixture.DemoUser.Username: {user: fixture.DemoUser, hash: hash},
		},
		nextID: 2,
	}
}

func (st *userStore) authenticate(username, password string) (model.User, bool) {
	st.mu.Lock()
	acc, ok := st.byName[username]
	st.mu.Unlock()
	if !ok {
		return model.User{}, false
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return model.User{}, false
	}
	return acc.user, true
}

func (st *userStore) create(req model.RegisterRequest) (model.User, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.byName[req.Username]; ok {
		return model.User{}, errUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}
	user := model.User{
		ID:        strconv.Itoa(st.nextID),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	st.nextID++
	st.byName[req.Username] = &account{user: user, hash: hash}
	return user, nil
}

func (st *userStore) get(username string) (model.User, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	acc, ok := st.byName[username]
	if !ok {
		return model.User{}, false
	}
	return acc.user, true
}

func (st *userStore) update(username string, upd model.ProfileUpdate) (model.User, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	acc, ok := st.byName[username]
	if !ok {
		return model.User{}, false
	}
	if upd.Email != "" {
		acc.user.Email = upd.Email
	}
	if upd.FirstName != "" {
		acc.user.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		acc.user.LastName = upd.LastName
	}
	return acc.user, true
}

// issueToken creates an HS256 JWT for the given user.
func (s *Server) issueToken(user model.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// requireBearer validates the Authorization header and stores the resolved
// user on the context. The client's sentinel demo token resolves to the
// demo user so offline-created sessions keep working against the stand-in.
func (s *Server) requireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		if tokenStr == fixture.DemoToken || tokenStr == fixture.AuthToken {
			c.Set(contextKeyUser, fixture.DemoUser)
			c.Next()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}

		user, ok := s.users.get(claims.Subject)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "User not found."})
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// currentUser returns the user resolved by requireBearer.
func currentUser(c *gin.Context) model.User {
	v, _ := c.Get(contextKeyUser)
	u, _ := v.(model.User)
	return u
}
