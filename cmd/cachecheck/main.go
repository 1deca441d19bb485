// Command cachecheck exercises the cached endpoints of a running server and
// reports whether each request populated its Redis key.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"kinderadmin/internal/shared/config"
	"kinderadmin/internal/shared/constants"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/cache"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

type CheckResult struct {
	Name        string        `json:"name"`
	Endpoint    string        `json:"endpoint"`
	Key         string        `json:"key"`
	Status      int           `json:"status"`
	Cached      bool          `json:"cached"`
	MissLatency time.Duration `json:"missLatency"`
	HitLatency  time.Duration `json:"hitLatency"`
	Error       string        `json:"error,omitempty"`
}

type checker struct {
	baseURL string
	token   string
	redis   *redis.Client
	client  *http.Client
}

var (
	baseURL string
	userID  uint
	role    string
	outFile string
)

var rootCmd = &cobra.Command{
	Use:          "cachecheck",
	Short:        "Check that cached endpoints of a running server populate Redis",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg := config.Load()

		fmt.Println("🧪 Checking page guide and permission caches...")

		rdb, err := cache.Connect(cmd.Context(), cache.Config{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("❌ Redis connection failed: %w", err)
		}
		defer rdb.Close()
		fmt.Println("✅ Redis connection: OK")

		token, err := signProbeToken(cfg.JWT.Secret, userID, role)
		if err != nil {
			return fmt.Errorf("❌ Failed to sign token: %w", err)
		}

		c := &checker{
			baseURL: baseURL,
			token:   token,
			redis:   rdb,
			client:  &http.Client{Timeout: 30 * time.Second},
		}

		results := c.runAll(cmd.Context(), userID)
		failed := summarize(results)

		if outFile != "" {
			data, _ := json.MarshalIndent(results, "", "  ")
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				log.Printf("Warning: failed to write %s: %v", outFile, err)
			} else {
				fmt.Printf("\n💾 Detailed results saved to %s\n", outFile)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d cache checks failed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base", "http://localhost:8080/api/v1", "API base URL")
	rootCmd.PersistentFlags().UintVar(&userID, "user", 1, "user id placed in the signed token")
	rootCmd.PersistentFlags().StringVar(&role, "role", string(users.RoleAdmin), "role placed in the signed token")
	rootCmd.PersistentFlags().StringVar(&outFile, "out", "", "write JSON results to this file")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func (c *checker) runAll(ctx context.Context, id uint) []CheckResult {
	checks := []struct {
		name     string
		endpoint string
		key      string
	}{
		{"Page guide (exact)", "/page-guides/by-path/marketing/channels", constants.BuildPageGuideKey("/marketing/channels")},
		{"Page guide (funnel)", "/page-guides/by-path/marketing/funnel", constants.BuildPageGuideKey("/marketing/funnel")},
		{"All routes", "/permissions/routes", constants.BuildRoutesKey("all")},
		{"Dynamic routes", "/permissions/dynamic-routes", constants.BuildUserRoutesKey(id)},
		{"User permissions", "/permissions/user", constants.BuildUserPermissionsKey(id)},
	}

	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		fmt.Printf("\n🔍 %s\n", check.name)
		r := c.run(ctx, check.name, check.endpoint, check.key)
		results = append(results, r)
		printResult(r)
	}
	return results
}

func signProbeToken(secret string, userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": "cachecheck",
		"role":     role,
		"type":     "access",
		"exp":      time.Now().Add(10 * time.Minute).Unix(),
		"iat":      time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (c *checker) run(ctx context.Context, name, endpoint, key string) CheckResult {
	result := CheckResult{Name: name, Endpoint: endpoint, Key: key}

	if err := c.redis.Del(ctx, key).Err(); err != nil {
		result.Error = err.Error()
		return result
	}

	status, miss, err := c.get(ctx, endpoint)
	result.Status, result.MissLatency = status, miss
	if err != nil {
		result.Error = err.Error()
		return result
	}

	exists, err := c.redis.Exists(ctx, key).Result()
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Cached = exists == 1

	time.Sleep(100 * time.Millisecond)
	_, hit, err := c.get(ctx, endpoint)
	result.HitLatency = hit
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func (c *checker) get(ctx context.Context, endpoint string) (int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, time.Since(start), err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	elapsed := time.Since(start)

	if resp.StatusCode >= 400 {
		return resp.StatusCode, elapsed, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return resp.StatusCode, elapsed, nil
}

func printResult(r CheckResult) {
	statusIcon := "✅"
	if r.Error != "" || !r.Cached {
		statusIcon = "❌"
	}
	cacheIcon := "🔥"
	if !r.Cached {
		cacheIcon = "💾"
	}
	fmt.Printf("   %s %s %s miss=%v hit=%v\n", statusIcon, cacheIcon, r.Key, r.MissLatency, r.HitLatency)
	if r.Error != "" {
		fmt.Printf("   error: %s\n", r.Error)
	}
}

func summarize(results []CheckResult) int {
	fmt.Println("\n📊 CACHE CHECK REPORT")
	fmt.Println("=====================")

	failed := 0
	var missTotal, hitTotal time.Duration
	for _, r := range results {
		if r.Error != "" || !r.Cached {
			failed++
		}
		missTotal += r.MissLatency
		hitTotal += r.HitLatency
	}

	fmt.Printf("Checks: %d, failed: %d\n", len(results), failed)
	if n := time.Duration(len(results)); n > 0 {
		fmt.Printf("Average first request: %v\n", missTotal/n)
		fmt.Printf("Average cached request: %v\n", hitTotal/n)
	}
	return failed
}
