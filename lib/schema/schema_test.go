package schema

import (
	"errors"
	"testing"

	"steamtrader/internal/components/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type price struct {
	Date  int
	Price float64
}

var priceSchema = &Schema[price]{
	Name: "price",
	Fields: []Field[price]{
		Int("date", func(r *price, v int) { r.Date = v }),
		Float("price", func(r *price, v float64) { r.Price = v }),
	},
}

type discount struct {
	TotalBuy   float64
	TotalSell  float64
	Discount   float64
	Commission float64
}

var discountSchema = &Schema[discount]{
	Name: "discount",
	Fields: []Field[discount]{
		Float("total_buy", func(r *discount, v float64) { r.TotalBuy = v }),
		Float("total_sell", func(r *discount, v float64) { r.TotalSell = v }),
		Float("discount", func(r *discount, v float64) { r.Discount = v }),
		Float("commission", func(r *discount, v float64) { r.Commission = v }),
	},
}

type item struct {
	Success   bool
	OfferID   int
	Name      string
	Note      *string
	Tags      []string
	History   []price
	Discounts map[int]discount
	Latest    *price
}

var itemSchema = &Schema[item]{
	Name:   "item",
	Ignore: []string{"color"},
	Fields: []Field[item]{
		Bool("success", func(r *item, v bool) { r.Success = v }),
		Int("offer_id", func(r *item, v int) { r.OfferID = v }).From("offerId"),
		String("name", func(r *item, v string) { r.Name = v }),
		String("note", func(r *item, v string) { r.Note = &v }).Optional(),
		Strings("tags", func(r *item, v []string) { r.Tags = v }).Optional(),
		Seq("history", priceSchema, func(r *item, v []price) { r.History = v }),
		IntMap("discounts", discountSchema, func(r *item, v map[int]discount) { r.Discounts = v }).Optional(),
		Nested("latest", priceSchema, func(r *item, v price) { r.Latest = &v }).Optional(),
	},
}

func newTestDecoder() (*Decoder, *telemetry.Recorder) {
	rec := &telemetry.Recorder{}
	return NewDecoder(rec), rec
}

func TestDecodeObject(t *testing.T) {
	dec, rec := newTestDecoder()

	raw, err := Parse([]byte(`{
		"success": true,
		"offerId": "3227691166",
		"name": "Mann Co. Supply Crate Key",
		"color": "7D6D00",
		"history": [[1506137845, 20.0], {"date": 1506137900, "price": "21.5"}],
		"discounts": {"753": {"discount": 0, "commission": 10, "total_sell": 4.5, "total_buy": 0}}
	}`))
	require.NoError(t, err)

	out, err := Decode(dec, itemSchema, raw)
	require.NoError(t, err)

	expected := item{
		Success: true,
		OfferID: 3227691166,
		Name:    "Mann Co. Supply Crate Key",
		History: []price{
			{Date: 1506137845, Price: 20},
			{Date: 1506137900, Price: 21.5},
		},
		Discounts: map[int]discount{
			753: {TotalSell: 4.5, Commission: 10},
		},
	}
	if diff := cmp.Diff(expected, out); diff != "" {
		t.Fatal(diff)
	}
	require.Empty(t, rec.Events(telemetry.LevelWarning))
}

func TestDecodePositional(t *testing.T) {
	dec, _ := newTestDecoder()

	raw, err := Parse([]byte(`[1506137845, 20.0]`))
	require.NoError(t, err)

	out, err := Decode(dec, priceSchema, raw)
	require.NoError(t, err)
	require.Equal(t, price{Date: 1506137845, Price: 20.0}, out)
}

func TestUnknownFieldsReportedOnce(t *testing.T) {
	dec, rec := newTestDecoder()

	raw, err := Parse([]byte(`{
		"success": true, "offerId": 1, "name": "x", "history": [[1, 2, 3]],
		"debug_info": {"took": 3}, "extra": 1
	}`))
	require.NoError(t, err)

	_, err = Decode(dec, itemSchema, raw)
	require.NoError(t, err)

	warnings := rec.Find(telemetry.LevelWarning, report_decoder_unknown_fields)
	require.Len(t, warnings, 1)
	require.Equal(t, "item", warnings[0].Params[0])
	require.Equal(t,
		[]string{"item.debug_info", "item.extra", "item.history[0][2:]"},
		warnings[0].Params[1],
	)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		json string
		path string
	}{
		{
			name: "missing required field",
			json: `{"success": true, "offerId": 1, "history": []}`,
			path: "item.name",
		},
		{
			name: "null required field",
			json: `{"success": true, "offerId": 1, "name": null, "history": []}`,
			path: "item.name",
		},
		{
			name: "wrong scalar type",
			json: `{"success": true, "offerId": "abc", "name": "x", "history": []}`,
			path: "item.offer_id",
		},
		{
			name: "fractional integer",
			json: `{"success": true, "offerId": 1.5, "name": "x", "history": []}`,
			path: "item.offer_id",
		},
		{
			name: "integer beyond int range",
			json: `{"success": true, "offerId": 1e300, "name": "x", "history": []}`,
			path: "item.offer_id",
		},
		{
			name: "integer just past int64",
			json: `{"success": true, "offerId": 9223372036854775808, "name": "x", "history": []}`,
			path: "item.offer_id",
		},
		{
			name: "nested positional row too short",
			json: `{"success": true, "offerId": 1, "name": "x", "history": [[1, 2], [3]]}`,
			path: "item.history[1].price",
		},
		{
			name: "non integer map key",
			json: `{"success": true, "offerId": 1, "name": "x", "history": [], "discounts": {"tf2": {}}}`,
			path: "item.discounts",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dec, _ := newTestDecoder()
			raw, err := Parse([]byte(tc.json))
			require.NoError(t, err)

			_, err = Decode(dec, itemSchema, raw)
			require.True(t, errors.Is(err, ErrStructural), "got %v", err)

			var decodeErr *Error
			require.ErrorAs(t, err, &decodeErr)
			require.Equal(t, tc.path, decodeErr.Path)
		})
	}
}

func TestDecodeNilInput(t *testing.T) {
	dec, _ := newTestDecoder()
	_, err := Decode(dec, itemSchema, nil)
	require.ErrorIs(t, err, ErrStructural)
}

func TestOptionalFields(t *testing.T) {
	dec, _ := newTestDecoder()

	raw, err := Parse([]byte(`{
		"success": false, "offerId": 1, "name": "x", "history": {},
		"note": "hello", "tags": ["a", "b"], "discounts": [], "latest": []
	}`))
	require.NoError(t, err)

	out, err := Decode(dec, itemSchema, raw)
	require.NoError(t, err)
	require.NotNil(t, out.Note)
	require.Equal(t, "hello", *out.Note)
	require.Equal(t, []string{"a", "b"}, out.Tags)
	require.Empty(t, out.History)
	require.Empty(t, out.Discounts)
	require.Nil(t, out.Latest)
}

type facets struct {
	Group   string
	Quality []int
	Region  []int
}

var tf2Facets = &Schema[facets]{
	Name: "tf2",
	Fields: []Field[facets]{
		Ints("quality", func(r *facets, v []int) { r.Group = "tf2"; r.Quality = v }),
		Ints("class", func(r *facets, v []int) {}),
	},
}

var giftFacets = &Schema[facets]{
	Name: "gift",
	Fields: []Field[facets]{
		Ints("region", func(r *facets, v []int) { r.Group = "gift"; r.Region = v }),
	},
}

var facetsSchema = OneOf("facets", tf2Facets, giftFacets)

func TestVariants(t *testing.T) {
	testCases := []struct {
		name     string
		json     string
		expected facets
		fails    bool
	}{
		{
			name:     "first variant",
			json:     `{"quality": [28, 50], "class": [30]}`,
			expected: facets{Group: "tf2", Quality: []int{28, 50}},
		},
		{
			name:     "falls back when a key of the first variant is missing",
			json:     `{"quality": [28], "region": [73]}`,
			expected: facets{Group: "gift", Region: []int{73}},
		},
		{
			name:  "no variant matches",
			json:  `{"rarity": [2]}`,
			fails: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dec, _ := newTestDecoder()
			raw, err := Parse([]byte(tc.json))
			require.NoError(t, err)

			out, err := Decode(dec, facetsSchema, raw)
			if tc.fails {
				require.ErrorIs(t, err, ErrStructural)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, out); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestDecodeIdempotent(t *testing.T) {
	dec, _ := newTestDecoder()
	body := []byte(`{"success": true, "offerId": 7, "name": "x", "history": [[1, 2.5]], "discounts": {"440": {"discount": 1, "commission": 5, "total_sell": 0, "total_buy": 3}}}`)

	first, err := DecodeJSON(dec, itemSchema, body)
	require.NoError(t, err)
	second, err := DecodeJSON(dec, itemSchema, body)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatal(diff)
	}
}

func TestTopLevelHelpers(t *testing.T) {
	dec, _ := newTestDecoder()

	raw, err := Parse([]byte(`{"753": {"discount": 0, "commission": 10, "total_sell": 4.5, "total_buy": 0}}`))
	require.NoError(t, err)
	m, err := DecodeIntMap(dec, discountSchema, raw)
	require.NoError(t, err)
	require.Contains(t, m, 753)

	raw, err = Parse([]byte(`[[1, 2], [3, 4]]`))
	require.NoError(t, err)
	rows, err := DecodeSeq(dec, priceSchema, raw)
	require.NoError(t, err)
	require.Equal(t, []price{{1, 2}, {3, 4}}, rows)
}
