package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"cohost/shared/cache"
	"cohost/shared/constant"
	"cohost/shared/dto"
	"cohost/shared/timezone"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterOwnedByID scopes a primary-key lookup to the owning account. Rows
// belonging to other accounts fall outside the filter, so they surface as
// not found rather than forbidden.
func FilterOwnedByID(id, userID, fieldID, fieldUserID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
			dto.Filter{
				Field:    fieldUserID,
				Value:    userID,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a cache key from a base prefix plus the
// query parameters and filters that shaped the result.
func BuildCacheKeyWithQuery(base string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	argsJSON, err := json.Marshal(args)
	if err != nil {
		argsJSON = []byte(constant.Empty)
	}

	return fmt.Sprintf("%s:%d:%d:%s:%s:%s:%s", base, params.Page, params.Limit, params.SortBy, params.SortDir, where, argsJSON)
}

// InvalidateCaches clears every cache entry under the given prefix,
// logging failures without propagating them.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
	}
}

var slugPattern = regexp.MustCompile(`\s+`)

// Slugify lowercases a display name and collapses whitespace runs into
// hyphens, producing a stable room key.
func Slugify(name string) string {
	return slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
