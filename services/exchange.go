package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// BanxicoSeriesID is the USD/MXN FIX exchange rate series.
const BanxicoSeriesID = "SF43718"

const banxicoBaseURL = "https://www.banxico.org.mx/SieAPIRest/service/v1"

// ErrNoExchangeData indicates Banxico returned no usable datum for the
// queried windows.
var ErrNoExchangeData = errors.New("no exchange rate data available")

// ExchangeRate is the latest published USD/MXN rate.
type ExchangeRate struct {
	Rate float64
	Date string
}

// BanxicoClient queries the Banxico SIE API for the USD/MXN series.
type BanxicoClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Now        func() time.Time
}

// NewBanxicoClient builds a client with the given API token.
func NewBanxicoClient(token string) *BanxicoClient {
	return &BanxicoClient{
		BaseURL:    banxicoBaseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Now:        time.Now,
	}
}

type banxicoResponse struct {
	Bmx struct {
		Series []struct {
			Datos []struct {
				Fecha string `json:"fecha"`
				Dato  string `json:"dato"`
			} `json:"datos"`
		} `json:"series"`
	} `json:"bmx"`
}

// LatestRate fetches the most recent published rate, first over the last
// 3 days and then, when the window is empty (weekends, holidays), over the
// last 7 days.
func (c *BanxicoClient) LatestRate() (*ExchangeRate, error) {
	today := c.Now()

	rate, err := c.fetchWindow(today.AddDate(0, 0, -3), today)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, ErrNoExchangeData) {
		return nil, err
	}

	return c.fetchWindow(today.AddDate(0, 0, -7), today)
}

func (c *BanxicoClient) fetchWindow(from, to time.Time) (*ExchangeRate, error) {
	url := fmt.Sprintf("%s/series/%s/datos/%s/%s?token=%s",
		c.BaseURL, BanxicoSeriesID,
		from.Format("2006-01-02"), to.Format("2006-01-02"), c.Token)

	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("banxico request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("banxico API error: %d", resp.StatusCode)
	}

	var payload banxicoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("banxico response: %w", err)
	}

	if len(payload.Bmx.Series) == 0 {
		return nil, ErrNoExchangeData
	}

	// Take the newest parseable datum. Banxico publishes "N/E" markers for
	// days without a fixing.
	datos := payload.Bmx.Series[0].Datos
	for i := len(datos) - 1; i >= 0; i-- {
		value, err := strconv.ParseFloat(datos[i].Dato, 64)
		if err != nil {
			continue
		}
		return &ExchangeRate{Rate: value, Date: datos[i].Fecha}, nil
	}

	return nil, ErrNoExchangeData
}
