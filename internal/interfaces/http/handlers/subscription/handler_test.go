package subscription

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/novastream-inc/novastream/internal/application/subscription/usecases"
	"github.com/novastream-inc/novastream/internal/infrastructure/persistence/models"
	"github.com/novastream-inc/novastream/internal/infrastructure/repository"
	"github.com/novastream-inc/novastream/internal/shared/logger"
)

func setupTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SubscriptionModel{}))

	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	repo := repository.NewSubscriptionRepository(db, log)

	handler := NewHandler(
		usecases.NewCreateSubscriptionUseCase(repo, log),
		usecases.NewGetSubscriptionUseCase(repo, log),
		usecases.NewUpdateSubscriptionUseCase(repo, log),
		usecases.NewCancelSubscriptionUseCase(repo, log),
		usecases.NewListUserSubscriptionsUseCase(repo, log),
		usecases.NewListSubscriptionsByDurationUseCase(repo, log),
		usecases.NewListPlansUseCase(),
		log,
	)

	engine := gin.New()
	api := engine.Group("/api")
	subscriptions := api.Group("/subscriptions")
	subscriptions.POST("", handler.CreateSubscription)
	subscriptions.GET("", handler.ListSubscriptions)
	subscriptions.GET("/:id", handler.GetSubscription)
	subscriptions.PUT("/:id", handler.UpdateSubscription)
	subscriptions.DELETE("/:id", handler.CancelSubscription)
	api.GET("/plans", handler.ListPlans)

	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type subscriptionPayload struct {
	ID             string    `json:"id"`
	UserName       string    `json:"userName"`
	PlanName       string    `json:"planName"`
	MonthlyPrice   float64   `json:"monthlyPrice"`
	Duration       int       `json:"duration"`
	TotalAmount    float64   `json:"totalAmount"`
	VideoQuality   string    `json:"videoQuality"`
	ScreensAllowed int       `json:"screensAllowed"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Status         string    `json:"status"`
}

// billedBlocks returns how many 30 day billing blocks a fresh subscription
// still has. Calendar months are 28 to 31 days, so the count depends on when
// the test runs and must be derived from the returned dates.
func billedBlocks(sub subscriptionPayload) int {
	return int(math.Ceil(sub.EndDate.Sub(sub.StartDate).Hours() / (30 * 24)))
}

func decodeSubscription(t *testing.T, env apiEnvelope) subscriptionPayload {
	t.Helper()
	var sub subscriptionPayload
	require.NoError(t, json.Unmarshal(env.Data, &sub))
	return sub
}

func createSubscriptionViaAPI(t *testing.T, engine *gin.Engine, userName, planName string, price float64, duration int) subscriptionPayload {
	t.Helper()

	w := doJSON(t, engine, http.MethodPost, "/api/subscriptions", gin.H{
		"userName":     userName,
		"planName":     planName,
		"monthlyPrice": price,
		"duration":     duration,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decodeSubscription(t, decodeEnvelope(t, w))
}

func TestCreateSubscription_Endpoint(t *testing.T) {
	engine := setupTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/subscriptions", gin.H{
		"userName":     "alice",
		"planName":     "Standard",
		"monthlyPrice": 15.49,
		"duration":     3,
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Subscription created successfully", env.Message)

	sub := decodeSubscription(t, env)
	assert.Regexp(t, `^sub_`, sub.ID)
	assert.Equal(t, "alice", sub.UserName)
	assert.Equal(t, "Standard", sub.PlanName)
	assert.Equal(t, 3, sub.Duration)
	assert.InDelta(t, 46.47, sub.TotalAmount, 0.001)
	assert.Equal(t, "Better", sub.VideoQuality)
	assert.Equal(t, 2, sub.ScreensAllowed)
	assert.Equal(t, "Active", sub.Status)
}

func TestCreateSubscription_DuplicateActiveRejected(t *testing.T) {
	engine := setupTestEngine(t)
	createSubscriptionViaAPI(t, engine, "alice", "Basic", 6.99, 1)

	w := doJSON(t, engine, http.MethodPost, "/api/subscriptions", gin.H{
		"userName":     "alice",
		"planName":     "Premium",
		"monthlyPrice": 22.99,
		"duration":     6,
	})

	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "conflict", env.Error.Type)
}

func TestCreateSubscription_ValidationErrors(t *testing.T) {
	engine := setupTestEngine(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing user name", gin.H{"planName": "Basic", "monthlyPrice": 6.99, "duration": 1}},
		{"unknown plan", gin.H{"userName": "alice", "planName": "Platinum", "monthlyPrice": 9.99, "duration": 1}},
		{"lowercase plan", gin.H{"userName": "alice", "planName": "basic", "monthlyPrice": 6.99, "duration": 1}},
		{"zero duration", gin.H{"userName": "alice", "planName": "Basic", "monthlyPrice": 6.99, "duration": 0}},
		{"negative price", gin.H{"userName": "alice", "planName": "Basic", "monthlyPrice": -1.0, "duration": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, engine, http.MethodPost, "/api/subscriptions", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestGetSubscription_Endpoint(t *testing.T) {
	engine := setupTestEngine(t)
	created := createSubscriptionViaAPI(t, engine, "alice", "Premium", 22.99, 12)

	w := doJSON(t, engine, http.MethodGet, "/api/subscriptions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	sub := decodeSubscription(t, decodeEnvelope(t, w))
	assert.Equal(t, created.ID, sub.ID)
	assert.Equal(t, "Premium", sub.PlanName)
	assert.InDelta(t, 275.88, sub.TotalAmount, 0.001)
}

func TestGetSubscription_NotFound(t *testing.T) {
	engine := setupTestEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/api/subscriptions/sub_doesnotexist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSubscription_MalformedID(t *testing.T) {
	engine := setupTestEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/api/subscriptions/12345", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "sub_")
}

func TestUpdateSubscription_ExtendEndpoint(t *testing.T) {
	engine := setupTestEngine(t)
	created := createSubscriptionViaAPI(t, engine, "alice", "Standard", 15.49, 3)

	w := doJSON(t, engine, http.MethodPut, "/api/subscriptions/"+created.ID, gin.H{
		"duration": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sub := decodeSubscription(t, decodeEnvelope(t, w))
	expectedMonths := billedBlocks(created) + 2
	assert.InDelta(t, float64(expectedMonths)*15.49, sub.TotalAmount, 0.001)
	assert.WithinDuration(t, created.EndDate.AddDate(0, 2, 0), sub.EndDate, time.Second)
	assert.Equal(t, 3, sub.Duration)
	assert.Equal(t, "Active", sub.Status)
}

func TestUpdateSubscription_ChangePlanEndpoint(t *testing.T) {
	engine := setupTestEngine(t)
	created := createSubscriptionViaAPI(t, engine, "alice", "Basic", 6.99, 2)

	plan := "Premium"
	price := 22.99
	w := doJSON(t, engine, http.MethodPut, "/api/subscriptions/"+created.ID, gin.H{
		"planName":     plan,
		"monthlyPrice": price,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sub := decodeSubscription(t, decodeEnvelope(t, w))
	assert.Equal(t, "Premium", sub.PlanName)
	assert.Equal(t, "Best", sub.VideoQuality)
	assert.Equal(t, 4, sub.ScreensAllowed)
	assert.InDelta(t, float64(billedBlocks(created))*22.99, sub.TotalAmount, 0.001)
	assert.WithinDuration(t, created.EndDate, sub.EndDate, time.Second)
}

func TestUpdateSubscription_NegativeDurationMeansNoExtension(t *testing.T) {
	engine := setupTestEngine(t)
	created := createSubscriptionViaAPI(t, engine, "alice", "Standard", 15.49, 3)

	w := doJSON(t, engine, http.MethodPut, "/api/subscriptions/"+created.ID, gin.H{
		"duration": -4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sub := decodeSubscription(t, decodeEnvelope(t, w))
	// The end date stays put and the total is just the remaining term
	// repriced; a negative added duration is not an error.
	assert.WithinDuration(t, created.EndDate, sub.EndDate, time.Second)
	assert.InDelta(t, float64(billedBlocks(created))*15.49, sub.TotalAmount, 0.001)
}

func TestUpdateSubscription_ExpiredRejected(t *testing.T) {
	engine := setupTestEngine(t)
	created := createSubscriptionViaAPI(t, engine, "alice", "Basic", 6.99, 1)

	w := doJSON(t, engine, http.MethodDelete, "/api/subscriptions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPut, "/api/subscriptions/"+created.ID, gin.H{
		"duration": 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestUpdateSubscription_InvalidPlanRejected(t *testing.T) {
	engine := setupTestEngine(t)
	created := createSubscriptionViaAPI(t, engine, "alice", "Basic", 6.99, 1)

	w := doJSON(t, engine, http.MethodPut, "/api/subscriptions/"+created.ID, gin.H{
		"planName": "Platinum",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestCancelSubscription_Endpoint(t *testing.T) {
	engine := setupTestEngine(t)
	created := createSubscriptionViaAPI(t, engine, "alice", "Standard", 15.49, 6)

	w := doJSON(t, engine, http.MethodDelete, "/api/subscriptions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	assert.Equal(t, "Subscription cancelled successfully", env.Message)

	sub := decodeSubscription(t, env)
	assert.Equal(t, "Expired", sub.Status)

	// Cancelled user can subscribe again.
	w = doJSON(t, engine, http.MethodPost, "/api/subscriptions", gin.H{
		"userName":     "alice",
		"planName":     "Basic",
		"monthlyPrice": 6.99,
		"duration":     1,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCancelSubscription_NotFound(t *testing.T) {
	engine := setupTestEngine(t)

	w := doJSON(t, engine, http.MethodDelete, "/api/subscriptions/sub_doesnotexist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSubscriptions_ByUserName(t *testing.T) {
	engine := setupTestEngine(t)

	first := createSubscriptionViaAPI(t, engine, "alice", "Basic", 6.99, 1)
	doJSON(t, engine, http.MethodDelete, "/api/subscriptions/"+first.ID, nil)
	createSubscriptionViaAPI(t, engine, "alice", "Premium", 22.99, 12)
	createSubscriptionViaAPI(t, engine, "bob", "Basic", 6.99, 1)

	w := doJSON(t, engine, http.MethodGet, "/api/subscriptions?userName=alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var subs []subscriptionPayload
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &subs))
	require.Len(t, subs, 2)
	for _, sub := range subs {
		assert.Equal(t, "alice", sub.UserName)
	}
}

func TestListSubscriptions_ByUserName_EmptyList(t *testing.T) {
	engine := setupTestEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/api/subscriptions?userName=nobody", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// An unknown user yields an empty array, not null.
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestListSubscriptions_ByDuration(t *testing.T) {
	engine := setupTestEngine(t)
	createSubscriptionViaAPI(t, engine, "alice", "Basic", 6.99, 1)
	createSubscriptionViaAPI(t, engine, "bob", "Premium", 22.99, 12)

	w := doJSON(t, engine, http.MethodGet, "/api/subscriptions?duration=12", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var subs []subscriptionPayload
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, "bob", subs[0].UserName)
}

func TestListSubscriptions_FilterValidation(t *testing.T) {
	engine := setupTestEngine(t)

	tests := []struct {
		name  string
		query string
	}{
		{"no filter", ""},
		{"both filters", "?userName=alice&duration=12"},
		{"non numeric duration", "?duration=twelve"},
		{"zero duration", "?duration=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, engine, http.MethodGet, "/api/subscriptions"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestListPlans_Endpoint(t *testing.T) {
	engine := setupTestEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/api/plans", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var plans []struct {
		Name           string  `json:"name"`
		MonthlyPrice   float64 `json:"monthlyPrice"`
		VideoQuality   string  `json:"videoQuality"`
		ScreensAllowed int     `json:"screensAllowed"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &plans))
	require.Len(t, plans, 3)

	assert.Equal(t, "Basic", plans[0].Name)
	assert.InDelta(t, 6.99, plans[0].MonthlyPrice, 0.001)
	assert.Equal(t, "Premium", plans[2].Name)
	assert.Equal(t, 4, plans[2].ScreensAllowed)
}

func TestCreateSubscription_MalformedBody(t *testing.T) {
	engine := setupTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Invalid or missing subscription data", env.Error.Message)
}
