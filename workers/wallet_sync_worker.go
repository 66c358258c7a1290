// workers/wallet_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"mission-ledger-system/models"
	"mission-ledger-system/storage"

	"github.com/sirupsen/logrus"
)

// WalletSyncClient polls the external wallet service and mirrors connected
// wallets locally so balance reads can show addresses without a cross-service
// call.
type WalletSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Store      storage.Store
}

func NewWalletSyncClient(store storage.Store) *WalletSyncClient {
	baseURL := os.Getenv("SYNC_SERVICE_URL")
	if baseURL == "" {
		logrus.Fatal("SYNC_SERVICE_URL environment variable is required")
	}
	token := os.Getenv("LEDGER_SERVICE_TOKEN")
	if token == "" {
		logrus.Fatal("LEDGER_SERVICE_TOKEN environment variable is required for wallet sync")
	}

	return &WalletSyncClient{
		BaseURL: baseURL,
		Token:   token,
		Store:   store,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *WalletSyncClient) GetChangedWallets(ctx context.Context, since time.Time) ([]models.WalletMirror, error) {
	since = since.UTC()

	u, err := url.Parse(fmt.Sprintf("%s/api/v1/public/wallets", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call sync service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("sync service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Wallets []models.WalletMirror `json:"wallets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode sync service response: %w", err)
	}

	return response.Wallets, nil
}

// PollWallets mirrors changed wallets on an interval until ctx is cancelled.
func PollWallets(ctx context.Context, client *WalletSyncClient, pollInterval time.Duration) {
	logrus.Info("Starting wallet mirror polling...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Wallet polling stopped.")
			return
		case <-ticker.C:
			syncStart := time.Now().UTC()
			wallets, err := client.GetChangedWallets(ctx, lastSyncTime)
			if err != nil {
				logrus.WithError(err).Error("wallet sync fetch failed")
				continue
			}
			if len(wallets) == 0 {
				continue
			}

			for i := range wallets {
				wallets[i].LastSeenAt = syncStart
				if wallets[i].CreatedAt.IsZero() {
					wallets[i].CreatedAt = syncStart
				}
				wallets[i].UpdatedAt = syncStart
			}

			if err := client.Store.UpsertWalletMirrors(ctx, wallets); err != nil {
				logrus.WithError(err).Error("wallet mirror upsert failed")
				continue
			}

			logrus.WithField("count", len(wallets)).Info("wallet mirrors synced")
			lastSyncTime = syncStart
		}
	}
}
