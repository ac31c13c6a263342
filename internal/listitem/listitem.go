package listitem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// IDField is the item identifier field.
const IDField = "Id"

// MaxItems caps every key/value projection.
const MaxItems = 2000

// ErrInvalidListID is returned when a list identifier is not a GUID.
var ErrInvalidListID = errors.New("list id must be a GUID")

// Item is a list item as field name to value.
type Item map[string]interface{}

// ItemsQuery is a read request. A service must honor every field.
type ItemsQuery struct {
	Select    []string // Fields to return; empty returns all
	Filter    string   // OData filter text; empty matches everything
	OrderBy   string
	Ascending bool
	Top       int // Maximum number of items; zero means no limit
}

// Service executes list requests.
type Service interface {
	// AddItem creates an item and returns it as stored, including its
	// assigned Id.
	AddItem(ctx context.Context, listID uuid.UUID, fields Item) (Item, error)

	// UpdateItem merges fields into item id and returns the item as stored
	// after the update.
	UpdateItem(ctx context.Context, listID uuid.UUID, id int64, fields Item) (Item, error)

	// Items reads items of the list titled listTitle.
	Items(ctx context.Context, listTitle string, q ItemsQuery) ([]Item, error)

	// FieldChoices returns the declared choices of a choice field.
	FieldChoices(ctx context.Context, listTitle, field string) ([]string, error)
}

// KeyValuePair is a projected item or choice.
type KeyValuePair struct {
	Key  interface{}            `json:"key"`
	Text string                 `json:"text"`
	Data map[string]interface{} `json:"data"`
}

// KVOptions configures ProjectAsKeyValuePairs. Zero values take the
// documented defaults.
type KVOptions struct {
	TextField        string   // Default "Title"
	KeyField         string   // Default "Id"
	OrderBy          string   // Default TextField
	AdditionalFields []string // Copied into Data
	Filter           string   // Default no filter
}

func (o KVOptions) withDefaults() KVOptions {
	if o.TextField == "" {
		o.TextField = "Title"
	}
	if o.KeyField == "" {
		o.KeyField = IDField
	}
	if o.OrderBy == "" {
		o.OrderBy = o.TextField
	}
	return o
}

// CreateOrUpdate updates item when it carries a positive Id and adds it
// otherwise. The stored item is normalized and decoded into T.
func CreateOrUpdate[T any](ctx context.Context, svc Service, listID string, item Item) (T, error) {
	var zero T

	id, err := uuid.Parse(listID)
	if err != nil {
		return zero, fmt.Errorf("%w: %q", ErrInvalidListID, listID)
	}

	itemID, err := ItemID(item)
	if err != nil {
		return zero, err
	}

	fields := make(Item, len(item))
	for k, v := range item {
		if k != IDField {
			fields[k] = v
		}
	}

	var stored Item
	if itemID > 0 {
		stored, err = svc.UpdateItem(ctx, id, itemID, fields)
		if err != nil {
			return zero, fmt.Errorf("update item %d: %w", itemID, err)
		}
	} else {
		stored, err = svc.AddItem(ctx, id, fields)
		if err != nil {
			return zero, fmt.Errorf("add item: %w", err)
		}
	}

	return Decode[T](stored)
}

// ItemID reads the Id of item. A missing or null Id is zero.
func ItemID(item Item) (int64, error) {
	switch v := item[IDField].(type) {
	case nil:
		return 0, nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("item Id %v is not an integer", v)
		}
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("item Id %q is not an integer", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("item Id has unsupported type %T", v)
	}
}

// Normalize drops service metadata keys (odata.*, @odata.*, __metadata)
// from item.
func Normalize(item Item) Item {
	out := make(Item, len(item))
	for k, v := range item {
		if isMetadataKey(k) {
			continue
		}
		out[k] = v
	}
	return out
}

func isMetadataKey(k string) bool {
	return strings.HasPrefix(k, "odata.") || strings.HasPrefix(k, "@odata.") || k == "__metadata"
}

// Decode normalizes item and decodes it into T through its JSON form, so
// T may be a struct with json tags or a map.
func Decode[T any](item Item) (T, error) {
	var out T
	data, err := json.Marshal(Normalize(item))
	if err != nil {
		return out, fmt.Errorf("encode item: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode item: %w", err)
	}
	return out, nil
}

// ProjectAsKeyValuePairs reads up to MaxItems items ordered ascending by
// opts.OrderBy and maps each to a KeyValuePair.
func ProjectAsKeyValuePairs(ctx context.Context, svc Service, listName string, opts KVOptions) ([]KeyValuePair, error) {
	opts = opts.withDefaults()

	sel := append([]string{opts.KeyField, opts.TextField}, opts.AdditionalFields...)
	items, err := svc.Items(ctx, listName, ItemsQuery{
		Select:    sel,
		Filter:    opts.Filter,
		OrderBy:   opts.OrderBy,
		Ascending: true,
		Top:       MaxItems,
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", listName, err)
	}

	pairs := make([]KeyValuePair, 0, len(items))
	for _, item := range items {
		kv := KeyValuePair{
			Key:  item[opts.KeyField],
			Text: text(item[opts.TextField]),
			Data: make(map[string]interface{}, len(opts.AdditionalFields)),
		}
		for _, f := range opts.AdditionalFields {
			kv.Data[f] = item[f]
		}
		pairs = append(pairs, kv)
	}
	return pairs, nil
}

// ProjectChoiceValues returns the choices of field sorted, each as a pair
// whose key and text are the choice.
func ProjectChoiceValues(ctx context.Context, svc Service, listName, field string) ([]KeyValuePair, error) {
	choices, err := svc.FieldChoices(ctx, listName, field)
	if err != nil {
		return nil, fmt.Errorf("read choices of %s.%s: %w", listName, field, err)
	}

	sorted := append([]string(nil), choices...)
	sort.Strings(sorted)

	pairs := make([]KeyValuePair, len(sorted))
	for i, c := range sorted {
		pairs[i] = KeyValuePair{Key: c, Text: c, Data: map[string]interface{}{}}
	}
	return pairs, nil
}

func text(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
