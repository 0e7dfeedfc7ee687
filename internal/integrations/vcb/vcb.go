package vcb

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/minhlp/rental-service/internal/config"
	"github.com/sirupsen/logrus"
)

// Rate is one currency's buy/sell/transfer quote against VND.
type Rate struct {
	CurrencyCode string  `json:"currency_code"`
	CurrencyName string  `json:"currency_name"`
	Buy          float64 `json:"buy"`
	Transfer     float64 `json:"transfer"`
	Sell         float64 `json:"sell"`
}

// Client handles integration with the Vietcombank exchange rate feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new exchange rate client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.VCBRatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// GetRates fetches and parses the current exchange rate table
func (c *Client) GetRates() ([]Rate, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}
	c.log.Debugf("VCB XML response: %s", string(body))

	return parseRates(body)
}

// GetRate returns the quote for a single currency code
func (c *Client) GetRate(code string) (*Rate, error) {
	rates, err := c.GetRates()
	if err != nil {
		return nil, err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	for i := range rates {
		if rates[i].CurrencyCode == code {
			return &rates[i], nil
		}
	}
	return nil, fmt.Errorf("no rate found for currency %s", code)
}

// parseRates extracts the rate table from the feed's XML
func parseRates(rawBody []byte) ([]Rate, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	elements := doc.FindElements("//Exrate")
	if len(elements) == 0 {
		return nil, fmt.Errorf("no exchange rate data found in XML")
	}

	rates := make([]Rate, 0, len(elements))
	for _, el := range elements {
		rate := Rate{
			CurrencyCode: el.SelectAttrValue("CurrencyCode", ""),
			CurrencyName: strings.TrimSpace(el.SelectAttrValue("CurrencyName", "")),
			Buy:          parseAmount(el.SelectAttrValue("Buy", "")),
			Transfer:     parseAmount(el.SelectAttrValue("Transfer", "")),
			Sell:         parseAmount(el.SelectAttrValue("Sell", "")),
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

// parseAmount parses feed numbers like "25,462.00". A dash means the bank
// does not quote that side; it parses as zero.
func parseAmount(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
