package validate_test

import (
	"testing"

	"github.com/prakashraj/godown/pkg/validate"
)

type productInput struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price" validate:"gte=0"`
	Stock   *int    `json:"amountInStock" validate:"gte=0"`
	Email   string  `json:"email" validate:"nullable,email"`
	Website *string `json:"website" validate:"nullable,url"`
}

func TestStructPassesValidInput(t *testing.T) {
	stock := 3
	in := productInput{Name: "Bolt M8", Price: 0.5, Stock: &stock, Email: "sales@acme.example"}

	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestStructRejectsNegativeNumbers(t *testing.T) {
	stock := -1
	in := productInput{Price: -9.99, Stock: &stock}

	errs := validate.Struct(&in)
	if errs["price"] == "" {
		t.Error("expected price error")
	}
	if errs["amountInStock"] == "" {
		t.Error("expected amountInStock error")
	}
}

func TestStructSkipsNilPointers(t *testing.T) {
	in := productInput{Price: 1}

	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		t.Fatalf("nil pointer fields should be skipped, got %v", errs)
	}
}

func TestStructNullableSkipsEmpty(t *testing.T) {
	in := productInput{Email: ""}

	if errs := validate.Struct(&in); errs["email"] != "" {
		t.Fatalf("empty nullable email should pass, got %q", errs["email"])
	}
}

func TestStructRejectsBadEmailAndURL(t *testing.T) {
	site := "not-a-url"
	in := productInput{Email: "nope", Website: &site}

	errs := validate.Struct(&in)
	if errs["email"] == "" {
		t.Error("expected email error")
	}
	if errs["website"] == "" {
		t.Error("expected website error")
	}
}
