package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, "configuration invalid"),
			expected: "config: configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, "failed to load config"),
			expected: "config: failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.err.Error(); got != test.expected {
				t.Errorf("expected %q, got %q", test.expected, got)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(cause, CategoryStorage, "save failed")
	if !stdErrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestIsCategory_WrappedError(t *testing.T) {
	inner := NotFound("post", "post-1")
	wrapped := fmt.Errorf("handling request: %w", inner)
	if !IsCategory(wrapped, CategoryNotFound) {
		t.Error("expected wrapped error to keep its category")
	}
	if IsCategory(wrapped, CategoryValidation) {
		t.Error("unexpected category match")
	}
}

func TestGetCategory_UnclassifiedDefaultsToInternal(t *testing.T) {
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Errorf("expected internal, got %s", got)
	}
}

func TestValidation_ListsEveryMissingField(t *testing.T) {
	err := Validation("post:post-1", []string{"title", "slug", "status"})
	expected := "post:post-1 missing required fields: title, slug, status"
	if err.Message != expected {
		t.Errorf("expected %q, got %q", expected, err.Message)
	}
}

func TestReference_Message(t *testing.T) {
	err := Reference("post-9", "category", "cat-missing")
	if err.Message != "post:post-9 references unknown category: cat-missing" {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestCLIAdapter_ExitCodes(t *testing.T) {
	a := NewCLIAdapter(false, nil)
	cases := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{ValidationMsg("bad input"), 2},
		{Capacity(3), 2},
		{NotFound("tag", "tag-x"), 2},
		{Reference("p", "tag", "t"), 3},
		{Config("missing config", nil), 7},
		{Publish("push", fmt.Errorf("remote rejected")), 8},
		{Storage("read", fmt.Errorf("io")), 11},
		{fmt.Errorf("plain"), 10},
	}
	for _, tc := range cases {
		if got := a.ExitCodeFor(tc.err); got != tc.code {
			t.Errorf("error %v: expected exit %d, got %d", tc.err, tc.code, got)
		}
	}
}

func TestHTTPAdapter_StatusCodes(t *testing.T) {
	a := NewHTTPAdapter(nil)
	cases := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{ValidationMsg("bad"), http.StatusBadRequest},
		{NotFound("post", "x"), http.StatusNotFound},
		{Capacity(3), http.StatusConflict},
		{Reference("p", "category", "c"), http.StatusUnprocessableEntity},
		{Publish("commit", fmt.Errorf("no head")), http.StatusBadGateway},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := a.StatusCodeFor(tc.err); got != tc.status {
			t.Errorf("error %v: expected status %d, got %d", tc.err, tc.status, got)
		}
	}
}
