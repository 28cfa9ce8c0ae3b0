package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookzapp/bookz-server/internal/config"
	"github.com/bookzapp/bookz-server/internal/service"
	"github.com/bookzapp/bookz-server/internal/store/memstore"
	"github.com/bookzapp/bookz-server/internal/validation"
)

// errorEnvelope mirrors the wire shape of APIError.
type errorEnvelope struct {
	Detail  string `json:"detail"`
	Error   string `json:"error"`
	Path    string `json:"path"`
	Details any    `json:"details"`
}

func newTestServer(t *testing.T) humatest.TestAPI {
	t.Helper()

	st := memstore.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := validation.New()

	services := &Services{
		Depository: service.NewDepositoryService(st, logger, v),
		Author:     service.NewAuthorService(st, logger, v),
		Book:       service.NewBookService(st, logger, v),
		Copy:       service.NewCopyService(st, logger, v),
		Customer:   service.NewCustomerService(st, logger, v),
	}
	grid := config.DepositoryConfig{Lines: 1, Columns: 2, Shelves: 1, Positions: 5}
	s := NewServer(services, grid, logger)

	return humatest.Wrap(t, s.api)
}

func decodeError(t *testing.T, body []byte) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func initGrid(t *testing.T, api humatest.TestAPI) {
	t.Helper()
	resp := api.Post("/depository/new", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func createBook(t *testing.T, api humatest.TestAPI, isbn string, copies int) int64 {
	t.Helper()
	resp := api.Post("/book", map[string]any{
		"title":                "Kobzar",
		"publisher":            "Veselka",
		"place_of_publication": "Kyiv",
		"published_year":       1985,
		"isbn":                 isbn,
		"pages":                320,
		"authors": []map[string]any{
			{"first_name": "Taras", "last_name": "Shevchenko"},
		},
		"new_copies": copies,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var book struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &book))
	return book.ID
}

func createCustomer(t *testing.T, api humatest.TestAPI, email, phone string) int64 {
	t.Helper()
	resp := api.Post("/customer", map[string]any{
		"first_name": "Olena",
		"last_name":  "Kovalenko",
		"email":      email,
		"phone":      phone,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var customer struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &customer))
	return customer.ID
}

func TestHealthCheck(t *testing.T) {
	api := newTestServer(t)

	resp := api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "healthy")
}

func TestDepositoryLifecycle(t *testing.T) {
	api := newTestServer(t)

	resp := api.Post("/depository/new", map[string]any{
		"lines": 2, "columns": 2, "shelves": 2, "positions": 3,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"slots":24`)

	resp = api.Get("/depository/status")
	require.Equal(t, http.StatusOK, resp.Code)

	var status struct {
		TotalSlots int `json:"total_slots"`
		Free       int `json:"free"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &status))
	assert.Equal(t, 24, status.TotalSlots)
	assert.Equal(t, 24, status.Free)
}

func TestDepositoryNewUsesConfiguredDefaults(t *testing.T) {
	api := newTestServer(t)

	resp := api.Post("/depository/new", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	// 1 line x 2 columns x 1 shelf x 5 positions from the test config.
	assert.Contains(t, resp.Body.String(), `"slots":10`)
}

func TestBookEndpoints(t *testing.T) {
	api := newTestServer(t)
	initGrid(t, api)

	bookID := createBook(t, api, "9780000000400", 2)

	resp := api.Get(fmt.Sprintf("/book/%d", bookID))
	require.Equal(t, http.StatusOK, resp.Code)

	var book struct {
		ISBN    string `json:"isbn"`
		Authors []struct {
			LastName string `json:"last_name"`
		} `json:"authors"`
		Copies []struct {
			Status string `json:"status"`
		} `json:"copies"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &book))
	assert.Equal(t, "9780000000400", book.ISBN)
	require.Len(t, book.Authors, 1)
	assert.Equal(t, "Shevchenko", book.Authors[0].LastName)
	require.Len(t, book.Copies, 2)
	assert.Equal(t, "available", book.Copies[0].Status)

	resp = api.Get("/book/isbn/9780000000400")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = api.Delete(fmt.Sprintf("/book/%d", bookID))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get(fmt.Sprintf("/book/%d", bookID))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestErrorEnvelope(t *testing.T) {
	api := newTestServer(t)

	resp := api.Get("/book/9999")
	require.Equal(t, http.StatusNotFound, resp.Code)

	envelope := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "BOOK_NOT_FOUND", envelope.Error)
	assert.Equal(t, "book not found", envelope.Detail)
	assert.Equal(t, "/book/9999", envelope.Path)
}

func TestDuplicateISBNConflict(t *testing.T) {
	api := newTestServer(t)
	initGrid(t, api)

	createBook(t, api, "9780000000401", 0)

	resp := api.Post("/book", map[string]any{
		"title":                "Other",
		"publisher":            "Veselka",
		"place_of_publication": "Kyiv",
		"published_year":       1990,
		"isbn":                 "9780000000401",
		"pages":                100,
		"authors": []map[string]any{
			{"first_name": "Lesya", "last_name": "Ukrainka"},
		},
	})
	require.Equal(t, http.StatusConflict, resp.Code)
	envelope := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "BOOK_ALREADY_EXISTS", envelope.Error)
}

func TestCopyStatusEndpoints(t *testing.T) {
	api := newTestServer(t)
	initGrid(t, api)

	bookID := createBook(t, api, "9780000000402", 1)
	customerID := createCustomer(t, api, "olena@example.com", "0441234567")

	resp := api.Get(fmt.Sprintf("/book/%d", bookID))
	require.Equal(t, http.StatusOK, resp.Code)
	var book struct {
		Copies []struct {
			ID int64 `json:"id"`
		} `json:"copies"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &book))
	copyID := book.Copies[0].ID

	// Borrowing without a customer is a validation failure.
	resp = api.Patch(fmt.Sprintf("/book-copy/%d/status/borrowed", copyID), map[string]any{})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "CUSTOMER_REQUIRED", decodeError(t, resp.Body.Bytes()).Error)

	resp = api.Patch(fmt.Sprintf("/book-copy/%d/status/borrowed", copyID), map[string]any{
		"customer_id": customerID,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var copy struct {
		Status     string `json:"status"`
		CustomerID *int64 `json:"customer_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &copy))
	assert.Equal(t, "borrowed", copy.Status)
	require.NotNil(t, copy.CustomerID)
	assert.Equal(t, customerID, *copy.CustomerID)

	resp = api.Get("/book-copy/status/borrowed")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"count":1`)

	// Deleting a borrowed copy is refused.
	resp = api.Delete(fmt.Sprintf("/book-copy/%d", copyID))
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "BOOK_COPY_BORROWED", decodeError(t, resp.Body.Bytes()).Error)
}

func TestCopyStatementEndpoints(t *testing.T) {
	api := newTestServer(t)
	initGrid(t, api)

	bookID := createBook(t, api, "9780000000403", 1)

	resp := api.Get(fmt.Sprintf("/book/%d", bookID))
	require.Equal(t, http.StatusOK, resp.Code)
	var book struct {
		Copies []struct {
			ID int64 `json:"id"`
		} `json:"copies"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &book))
	copyID := book.Copies[0].ID

	resp = api.Patch(fmt.Sprintf("/book-copy/%d/statement/good", copyID))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = api.Patch(fmt.Sprintf("/book-copy/%d/statement/new", copyID))
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "INVALID_STATEMENT_TRANSITION", decodeError(t, resp.Body.Bytes()).Error)

	resp = api.Get("/book-copy/statement/good")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"count":1`)
}

func TestCustomerEndpoints(t *testing.T) {
	api := newTestServer(t)

	customerID := createCustomer(t, api, "olena@example.com", "0441234567")

	resp := api.Get(fmt.Sprintf("/customer/%d", customerID))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "+380 44 123 45 67")

	resp = api.Get("/customer/email/olena@example.com")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = api.Post("/customer/fullname", map[string]any{
		"first_name": "Olena",
		"last_name":  "Kovalenko",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = api.Patch(fmt.Sprintf("/customer/%d/phone", customerID), map[string]any{
		"phone": "066-644-32-27",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "+380 66 644 32 27")

	// Duplicate email conflicts with the right code.
	resp = api.Post("/customer", map[string]any{
		"first_name": "Inna",
		"last_name":  "Bondar",
		"email":      "olena@example.com",
		"phone":      "0501112233",
	})
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "CUSTOMER_EMAIL_ALREADY_EXISTS", decodeError(t, resp.Body.Bytes()).Error)

	// Malformed phone fails fast with a field detail.
	resp = api.Post("/customer", map[string]any{
		"first_name": "Inna",
		"last_name":  "Bondar",
		"email":      "inna@example.com",
		"phone":      "call me maybe",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	envelope := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "VALIDATION", envelope.Error)
}

func TestAuthorEndpoints(t *testing.T) {
	api := newTestServer(t)
	initGrid(t, api)

	resp := api.Post("/author", map[string]any{
		"first_name": "Lina",
		"last_name":  "Kostenko",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var author struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &author))

	resp = api.Post("/author", map[string]any{
		"first_name": "Lina",
		"last_name":  "Kostenko",
	})
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "AUTHOR_ALREADY_EXISTS", decodeError(t, resp.Body.Bytes()).Error)

	resp = api.Post("/author/fullname", map[string]any{
		"first_name": "Lina",
		"last_name":  "Kostenko",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	// An author linked to a book cannot be deleted.
	createBook(t, api, "9780000000404", 0)
	resp = api.Post("/author/fullname", map[string]any{
		"first_name": "Taras",
		"last_name":  "Shevchenko",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	var linked struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &linked))

	resp = api.Delete(fmt.Sprintf("/author/%d", linked.ID))
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "BOOK_PRESENT_IN_DATABASE", decodeError(t, resp.Body.Bytes()).Error)

	// Unlinked authors go away with the bulk cleanup.
	resp = api.Delete("/author/without-book")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"count":1`)
}
