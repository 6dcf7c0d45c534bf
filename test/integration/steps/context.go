// Package steps provides step definitions for the BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	rediscache "github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/persistence"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const testUserID = "default"

var serverOnce sync.Once
var testServer *httptest.Server
var testDB *mock.Db

// testContext holds the per-scenario state.
type testContext struct {
	client  *http.Client
	headers map[string]string

	responseStatus int
	responseBody   []byte
	responseJSON   map[string]any

	lastExpenseID uuid.UUID
	seedSequence  int
}

// InitializeTestSuite sets up suite-wide resources.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.startServer()
		return ctx, test.before()
	})

	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the following expenses exist:$`, test.theFollowingExpensesExist)
	ctx.Given(`^an expense exists with amount "([^"]*)", category "([^"]*)" and date "([^"]*)"$`, test.anExpenseExists)

	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the db should contain (\d+) rows in the "([^"]*)" table$`, test.theDbShouldContainRowsInTheTable)
}

// startServer wires the real application stack against the test database
// and the in-process redis, once for the whole suite.
func (t *testContext) startServer() {
	serverOnce.Do(func() {
		testDB = mock.NewDb(map[string]any{
			"expenses": &model.ExpenseModel{},
		})

		repo := persistence.NewExpenseRepository(testDB.Conn, testUserID)
		cache := rediscache.NewRedisCache(mock.NewRedis())

		service := expense.NewService(repo, cache, expense.TTLTiers{
			Short:    5 * time.Minute,
			Medium:   30 * time.Minute,
			Long:     2 * time.Hour,
			Extended: 24 * time.Hour,
		})

		healthController := controller.NewHealthController(
			func() bool { return testDB != nil && testDB.Conn != nil },
			func() bool { return true },
		)
		expenseController := controller.NewExpenseController(service, decimal.NewFromInt(20000))

		r := router.NewRouter(healthController, expenseController)
		testServer = httptest.NewServer(r.Setup("test"))
	})
}

// before resets all shared state so scenarios cannot observe each other.
func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.responseStatus = 0
	t.responseBody = nil
	t.responseJSON = nil
	t.lastExpenseID = uuid.Nil
	t.seedSequence = 0

	if err := testDB.Reset(); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}
	return nil
}

func (t *testContext) theAPIServerIsRunning() error {
	if testServer == nil {
		return errors.New("test server is not running")
	}
	return nil
}

func (t *testContext) anExpenseExists(amount, category, date string) error {
	return t.seedExpense(amount, category, date, "")
}

func (t *testContext) theFollowingExpensesExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("expected a header row and at least one data row")
	}

	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}

	for _, row := range table.Rows[1:] {
		cell := func(name string) string {
			if i, ok := columns[name]; ok && i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
		err := t.seedExpense(cell("amount"), cell("category"), cell("date"), cell("description"))
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) seedExpense(amount, category, date, description string) error {
	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	// Stagger CreatedAt so listing order is deterministic for same-day rows.
	t.seedSequence++
	createdAt := time.Now().UTC().Add(time.Duration(t.seedSequence) * time.Millisecond)

	record := &model.ExpenseModel{
		ID:          uuid.New(),
		UserID:      testUserID,
		Amount:      parsedAmount,
		Category:    category,
		Date:        parsedDate,
		Description: description,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	if err := testDB.Conn.Create(record).Error; err != nil {
		return fmt.Errorf("failed to seed expense: %w", err)
	}

	t.lastExpenseID = record.ID
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	return strings.ReplaceAll(content, "{{expense_id}}", t.lastExpenseID.String())
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, testServer.URL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	t.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	t.responseStatus = resp.StatusCode
	t.responseJSON = nil

	var parsed map[string]any
	if err := json.Unmarshal(t.responseBody, &parsed); err == nil {
		t.responseJSON = parsed

		// Capture the created expense id for later {{expense_id}} use.
		if idValue := getFieldValue(parsed, "data.id"); idValue != nil {
			if id, err := uuid.Parse(fmt.Sprintf("%v", idValue)); err == nil {
				t.lastExpenseID = id
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.responseStatus != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.responseStatus, t.responseBody)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.responseJSON == nil {
		return fmt.Errorf("response is not a JSON object: %s", t.responseBody)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if !strings.Contains(string(t.responseBody), expected) {
		return fmt.Errorf("response does not contain %q (body: %s)", expected, t.responseBody)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value := getFieldValue(t.responseJSON, field)
	if value == nil {
		return fmt.Errorf("field %q not found in response: %s", field, t.responseBody)
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expectedValue {
		return fmt.Errorf("field %q expected %q, got %q", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if getFieldValue(t.responseJSON, field) == nil {
		return fmt.Errorf("field %q not found in response: %s", field, t.responseBody)
	}
	return nil
}

func (t *testContext) theDbShouldContainRowsInTheTable(quantity int, table string) error {
	entity, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table %q not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	slicePtr := reflect.New(reflect.SliceOf(entityType))

	if err := testDB.Conn.Unscoped().Find(slicePtr.Interface()).Error; err != nil {
		return err
	}

	count := slicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d rows in %q, got %d", quantity, table, count)
	}
	return nil
}

// getFieldValue resolves a dot-separated path in a decoded JSON document.
// Numeric path segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
