package web

import (
	"context"
	"strconv"
	"strings"

	"steamtrader/lib/htmlutil"
	"steamtrader/lib/schema"
	"steamtrader/lib/steamtrader"

	"github.com/PuerkitoBio/goquery"
)

const (
	descriptionsStart = "var d="
	descriptionsEnd   = ";Market.setItemOffers(d,"
)

// envelope parses a pjax reply. A reply carrying an error key means the
// query matched nothing.
func envelope(endpoint string, body []byte) (map[string]any, error) {
	raw, err := schema.Parse(body)
	if err != nil {
		return nil, &steamtrader.TransportError{Endpoint: endpoint, Err: err}
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &schema.Error{Path: endpoint, Reason: "reply is not a JSON object"}
	}
	if msg, found := m["error"]; found {
		text, _ := msg.(string)
		return nil, &steamtrader.DomainError{
			Kind:     steamtrader.ErrNotFound,
			Endpoint: endpoint,
			Message:  "nothing was found: " + text,
		}
	}
	return m, nil
}

func decodeMainPage(d *schema.Decoder, body []byte) (*MainPage, error) {
	m, err := envelope("main page", body)
	if err != nil {
		return nil, err
	}
	// an empty page sends its contents as a string
	if _, ok := m["contents"].(map[string]any); !ok {
		delete(m, "contents")
	}
	page, err := schema.Decode(d, mainPageSchema, m)
	if err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []MainPageItem{}
	}
	return &page, nil
}

func decodeItemInfo(d *schema.Decoder, body []byte) (*ItemInfo, error) {
	m, err := envelope("item page", body)
	if err != nil {
		return nil, err
	}
	page, err := schema.Decode(d, itemPageSchema, m)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Contents))
	if err != nil {
		return nil, &schema.Error{Path: "ItemInfo.contents", Reason: err.Error()}
	}

	offers, err := decodeSellOffers(doc)
	if err != nil {
		return nil, err
	}
	descriptions, err := decodeDescriptions(d, doc)
	if err != nil {
		return nil, err
	}

	return &ItemInfo{
		Auth:         page.Auth,
		SellOffers:   offers,
		Descriptions: descriptions,
		Item:         page.Item,
		Commission:   page.Commission,
		Discount:     page.Discount,
	}, nil
}

// decodeSellOffers reads every div.offer in document order. The cells of an
// offer are, in order: image, name and type, unused, price.
func decodeSellOffers(doc *goquery.Document) ([]SellOffer, error) {
	var offers []SellOffer
	var err error
	doc.Find("div.offer").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		var offer SellOffer
		offer, err = decodeSellOffer(i, sel)
		if err != nil {
			return false
		}
		offers = append(offers, offer)
		return true
	})
	if err != nil {
		return nil, err
	}
	if offers == nil {
		offers = []SellOffer{}
	}
	return offers, nil
}

func decodeSellOffer(i int, sel *goquery.Selection) (SellOffer, error) {
	path := "ItemInfo.sell_offers[" + strconv.Itoa(i) + "]"

	id, err := strconv.Atoi(sel.AttrOr("data-id", ""))
	if err != nil {
		return SellOffer{}, &schema.Error{Path: path + ".id", Reason: "offer has no numeric data-id"}
	}
	// the item id sits on the inner item block, older markup only has the
	// offer's own id
	itemID := id
	if inner := sel.Find("div[data-id]").First(); inner.Length() > 0 {
		itemID, err = strconv.Atoi(inner.AttrOr("data-id", ""))
		if err != nil {
			return SellOffer{}, &schema.Error{Path: path + ".itemid", Reason: "item has no numeric data-id"}
		}
	}

	cells := sel.Find("td")
	info := cells.Eq(1)
	priceAttr, ok := cells.Eq(3).Find("[data-price]").Attr("data-price")
	if !ok {
		return SellOffer{}, &schema.Error{Path: path + ".price", Reason: "required field is missing"}
	}
	price, err := htmlutil.ParsePrice(priceAttr)
	if err != nil {
		return SellOffer{}, &schema.Error{Path: path + ".price", Reason: err.Error()}
	}

	return SellOffer{
		ID:       id,
		ItemID:   itemID,
		ImageURL: cells.Eq(0).Find("img").AttrOr("src", ""),
		Name:     htmlutil.SelectionText(info.ChildrenFiltered("div").Eq(0)),
		Type:     htmlutil.SelectionText(info.ChildrenFiltered("div").Eq(1).ChildrenFiltered("p").Eq(1)),
		Price:    price,
	}, nil
}

// decodeDescriptions reads the item descriptions the page script hands to
// the market widget. A page without a script is not an item page at all.
func decodeDescriptions(d *schema.Decoder, doc *goquery.Document) (map[int]ItemDescription, error) {
	script := doc.Find("script").First()
	if script.Length() == 0 {
		return nil, &steamtrader.DomainError{
			Kind:     steamtrader.ErrUnknownItem,
			Endpoint: "item page",
			Message:  "the page does not describe an item",
		}
	}
	text := htmlutil.GetText(script.Nodes[0])

	start := strings.Index(text, descriptionsStart)
	if start < 0 {
		return nil, nil
	}
	start += len(descriptionsStart)
	end := strings.Index(text[start:], descriptionsEnd)
	if end < 0 {
		return nil, nil
	}

	raw, err := schema.Parse([]byte(text[start : start+end]))
	if err != nil {
		return nil, &schema.Error{Path: "ItemInfo.descriptions", Reason: "invalid json: " + err.Error()}
	}
	return schema.DecodeIntMap(d, itemDescriptionSchema, raw)
}

func decodeReferralLink(body []byte) (string, error) {
	m, err := envelope("referral", body)
	if err != nil {
		return "", err
	}
	contents, _ := m["contents"].(string)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		return "", &schema.Error{Path: "Referral.contents", Reason: err.Error()}
	}
	link, ok := doc.Find("input.big").Attr("value")
	if !ok {
		return "", &schema.Error{Path: "Referral.link", Reason: "required field is missing"}
	}
	return link, nil
}

// decodeReferrals reads the referral table, one row per referral with the
// cells name, date, status and sum. An empty table has a single row whose
// cell spans every column.
func decodeReferrals(body []byte) ([]Referral, error) {
	m, err := envelope("referrals", body)
	if err != nil {
		return nil, err
	}
	contents, _ := m["contents"].(string)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		return nil, &schema.Error{Path: "Referrals.contents", Reason: err.Error()}
	}

	referrals := []Referral{}
	var rowErr error
	doc.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return true
		}
		sum, err := htmlutil.ParsePrice(htmlutil.SelectionText(cells.Eq(3)))
		if err != nil {
			rowErr = &schema.Error{Path: "Referrals[" + strconv.Itoa(len(referrals)) + "].sum", Reason: err.Error()}
			return false
		}
		referrals = append(referrals, Referral{
			Name:   htmlutil.SelectionText(cells.Eq(0)),
			Date:   htmlutil.SelectionText(cells.Eq(1)),
			Status: htmlutil.SelectionText(cells.Eq(2)),
			Sum:    sum,
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return referrals, nil
}

// decodeHistory reads one of the div.items blocks of a full history page.
// Each sale is a link to the item page holding four spans: image, price,
// date and name.
func decodeHistory(ctx context.Context, body []byte, block int) ([]HistoryItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, &schema.Error{Path: "History", Reason: err.Error()}
	}
	blocks := doc.Find("div.items")
	if block >= blocks.Length() {
		return nil, &steamtrader.DomainError{
			Kind:     steamtrader.ErrNotFound,
			Endpoint: "history",
			Message:  "the page has no history block " + strconv.Itoa(block),
		}
	}

	items := []HistoryItem{}
	var itemErr error
	blocks.Eq(block).Find("a").EachWithBreak(func(i int, link *goquery.Selection) bool {
		spans := link.ChildrenFiltered("span")
		price, err := htmlutil.ParsePrice(htmlutil.SelectionText(spans.Eq(1)))
		if err != nil {
			itemErr = &schema.Error{Path: "History[" + strconv.Itoa(i) + "].price", Reason: err.Error()}
			return false
		}
		style := spans.Eq(3).AttrOr("style", "")
		var href string
		if anchors := htmlutil.GetAnchors(ctx, link); len(anchors) > 0 {
			href = anchors[0].Href
		}
		items = append(items, HistoryItem{
			URL:      href,
			ImageURL: spans.Eq(0).Find("img").AttrOr("src", ""),
			Price:    price,
			Date:     htmlutil.SelectionText(spans.Eq(2)),
			Name:     htmlutil.SelectionText(spans.Eq(3)),
			Color:    strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(style), "color:")),
		})
		return true
	})
	if itemErr != nil {
		return nil, itemErr
	}
	return items, nil
}
