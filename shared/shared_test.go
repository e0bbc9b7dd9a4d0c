package shared_test

import (
	"testing"

	"cohost/shared"
	"cohost/shared/constant"
	"cohost/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if got != nil {
					t.Errorf("expected nil, got %v", *got)
				}

				return
			}

			if got == nil || *got != *tt.expected {
				t.Errorf("expected %v, got %v", *tt.expected, got)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 25, limit: 0, expected: 1},
		{name: "exact division", total: 20, limit: 10, expected: 2},
		{name: "rounds up", total: 21, limit: 10, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	patch := struct {
		Name string `db:"name"`
		Size int    `db:"size"`
		Room string `db:"room_key"`
	}{
		Name: "Lee",
		Size: 4,
	}

	fields := shared.TransformFields(patch, "account-1")

	if fields["name"] != "Lee" {
		t.Errorf("expected name to be Lee, got %v", fields["name"])
	}

	if fields["size"] != 4 {
		t.Errorf("expected size to be 4, got %v", fields["size"])
	}

	if _, ok := fields["room_key"]; ok {
		t.Error("zero-valued field should be skipped")
	}

	if fields[constant.FieldModifiedBy] != "account-1" {
		t.Errorf("expected modified_by to be account-1, got %v", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be set")
	}
}

func TestFilterOwnedByID(t *testing.T) {
	filter := shared.FilterOwnedByID("party-1", "account-1", "id", "user_id", "parties")

	where, args := filter.GetWhereClause()

	if where == "" {
		t.Fatal("expected a WHERE clause")
	}

	if args["id"] != "party-1" {
		t.Errorf("expected id arg to be party-1, got %v", args["id"])
	}

	if args["user_id"] != "account-1" {
		t.Errorf("expected user_id arg to be account-1, got %v", args["user_id"])
	}
}

func TestBuildCacheKey(t *testing.T) {
	key := shared.BuildCacheKey("party", "get", "abc")
	if key != "party:get:abc" {
		t.Errorf("expected party:get:abc, got %s", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filterA := shared.FilterByID("a", "id", "parties")
	filterB := shared.FilterByID("b", "id", "parties")

	keyA := shared.BuildCacheKeyWithQuery("party:gets", params, filterA)
	keyB := shared.BuildCacheKeyWithQuery("party:gets", params, filterB)

	if keyA == keyB {
		t.Error("different filters should produce different cache keys")
	}

	if keyA != shared.BuildCacheKeyWithQuery("party:gets", params, filterA) {
		t.Error("same inputs should produce a stable cache key")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Main Dining Room", expected: "main-dining-room"},
		{input: "  Patio  ", expected: "patio"},
		{input: "Bar   Area", expected: "bar-area"},
	}

	for _, tt := range tests {
		if got := shared.Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func boolPtr(b bool) *bool {
	return &b
}
