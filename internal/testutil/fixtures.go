package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/purposeful/purposeful-backend/internal/domain"
	repoPostgres "github.com/purposeful/purposeful-backend/internal/repository/postgres"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test accounts with a builder pattern
type UserBuilder struct {
	email       string
	password    string
	firstName   string
	lastName    string
	authorities []domain.Authority
}

// NewUserBuilder creates a new UserBuilder holding the User authority
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:       fmt.Sprintf("user_%s@test.dev", uuid.New().String()[:8]),
		password:    "testpassword123",
		firstName:   "Test",
		lastName:    "User",
		authorities: []domain.Authority{domain.AuthorityUser},
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithAuthorities replaces the default authorities
func (b *UserBuilder) WithAuthorities(authorities ...domain.Authority) *UserBuilder {
	b.authorities = authorities
	return b
}

// Build creates the account and its profile directly in the database. The
// returned profile has AppUser loaded.
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.RegularUser, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	appUser := &domain.AppUser{
		Email:        b.email,
		FirstName:    b.firstName,
		LastName:     b.lastName,
		PasswordHash: string(hashedPassword),
	}
	appUser.SetAuthorities(b.authorities...)
	if err := db.Create(appUser).Error; err != nil {
		t.Fatalf("failed to create app user: %v", err)
	}

	profile := &domain.RegularUser{AppUserID: appUser.ID}
	if err := db.Omit("AppUser").Create(profile).Error; err != nil {
		t.Fatalf("failed to create regular user: %v", err)
	}
	profile.AppUser = appUser

	return profile, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string   `json:"id"`
		Email       string   `json:"email"`
		Authorities []string `json:"authorities"`
	} `json:"user"`
	AccessToken string `json:"accessToken"`
}

// BuildAndAuthenticate creates the account, then logs in through the API and
// returns the profile with an access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.RegularUser, string) {
	t.Helper()

	profile, password := b.Build(t, ts.DB)

	reqBody := map[string]string{
		"email":    profile.AppUser.Email,
		"password": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return profile, authResp.AccessToken
}

// CallerFor returns the identity a request made by the profile's account runs as
func CallerFor(profile *domain.RegularUser) domain.Caller {
	return domain.Caller{
		AppUserID:   profile.AppUserID,
		Email:       profile.AppUser.Email,
		Authorities: profile.AppUser.AuthorityList(),
	}
}

func CreateDomain(t *testing.T, db *gorm.DB, name string) *domain.Domain {
	t.Helper()
	d := &domain.Domain{Name: name}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("failed to create domain %s: %v", name, err)
	}
	return d
}

func CreateTechnology(t *testing.T, db *gorm.DB, name string) *domain.Technology {
	t.Helper()
	tech := &domain.Technology{Name: name}
	if err := db.Create(tech).Error; err != nil {
		t.Fatalf("failed to create technology %s: %v", name, err)
	}
	return tech
}

func CreateTopic(t *testing.T, db *gorm.DB, name string) *domain.Topic {
	t.Helper()
	topic := &domain.Topic{Name: name}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("failed to create topic %s: %v", name, err)
	}
	return topic
}

func CreateURL(t *testing.T, db *gorm.DB, raw string) *domain.URL {
	t.Helper()
	u := &domain.URL{URL: raw}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create url %s: %v", raw, err)
	}
	return u
}

// IdeaBuilder creates test ideas with a builder pattern. Missing domains,
// topics and icon are created on Build.
type IdeaBuilder struct {
	owner     *domain.RegularUser
	title     string
	isPrivate bool
	date      time.Time
	domains   []*domain.Domain
	techs     []*domain.Technology
	topics    []*domain.Topic
	images    []*domain.URL
	icon      *domain.URL
}

func NewIdeaBuilder(owner *domain.RegularUser) *IdeaBuilder {
	return &IdeaBuilder{
		owner: owner,
		title: fmt.Sprintf("Idea %s", uuid.New().String()[:8]),
		date:  time.Now(),
	}
}

func (b *IdeaBuilder) WithTitle(title string) *IdeaBuilder {
	b.title = title
	return b
}

func (b *IdeaBuilder) Private() *IdeaBuilder {
	b.isPrivate = true
	return b
}

func (b *IdeaBuilder) WithDate(date time.Time) *IdeaBuilder {
	b.date = date
	return b
}

func (b *IdeaBuilder) WithDomains(domains ...*domain.Domain) *IdeaBuilder {
	b.domains = domains
	return b
}

func (b *IdeaBuilder) WithTechs(techs ...*domain.Technology) *IdeaBuilder {
	b.techs = techs
	return b
}

func (b *IdeaBuilder) WithTopics(topics ...*domain.Topic) *IdeaBuilder {
	b.topics = topics
	return b
}

func (b *IdeaBuilder) WithImages(images ...*domain.URL) *IdeaBuilder {
	b.images = images
	return b
}

func (b *IdeaBuilder) WithIcon(icon *domain.URL) *IdeaBuilder {
	b.icon = icon
	return b
}

// Build stores the idea with its links and returns it fully loaded
func (b *IdeaBuilder) Build(t *testing.T, db *gorm.DB) *domain.Idea {
	t.Helper()

	suffix := uuid.New().String()[:8]
	if len(b.domains) == 0 {
		b.domains = []*domain.Domain{CreateDomain(t, db, "domain-"+suffix)}
	}
	if len(b.topics) == 0 {
		b.topics = []*domain.Topic{CreateTopic(t, db, "topic-"+suffix)}
	}
	if b.icon == nil {
		b.icon = CreateURL(t, db, "https://img.test.dev/"+suffix+".png")
	}

	idea := &domain.Idea{
		Title:       b.title,
		Purpose:     "Test purpose",
		Description: "Test description",
		IsPrivate:   b.isPrivate,
		Date:        b.date,
		IconURLID:   b.icon.ID,
		OwnerID:     b.owner.ID,
		Domains:     b.domains,
		Techs:       b.techs,
		Topics:      b.topics,
	}
	idea.SetSupportingImageURLs(b.images)

	repo := repoPostgres.NewIdeaRepository(db)
	if err := repo.Create(context.Background(), idea); err != nil {
		t.Fatalf("failed to create idea: %v", err)
	}

	loaded, err := repo.GetByID(context.Background(), idea.ID)
	if err != nil {
		t.Fatalf("failed to reload idea: %v", err)
	}
	return loaded
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends an authenticated request and fails the test on transport errors
func Do(t *testing.T, method, url string, body interface{}, token string) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(CreateAuthenticatedRequest(t, method, url, body, token))
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
