package models_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/daftarly/daftar_backend/config"
	"github.com/daftarly/daftar_backend/models"
	"github.com/daftarly/daftar_backend/utils"
	"github.com/shopspring/decimal"
)

func TestSupplierBalanceFreshAfterPurchaseAndPayment(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	// Wire env for config.Connect* helpers.
	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "daftar_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Test")

	biz, err := models.CreateBusiness(ctx, &models.NewBusiness{
		Name:  "Test Biz",
		Email: "owner@test.local",
	})
	if err != nil {
		t.Fatalf("CreateBusiness: %v", err)
	}
	ctx = utils.SetBusinessIdInContext(ctx, biz.ID.String())

	supplier, err := models.CreateSupplier(ctx, &models.NewSupplier{
		Name:           "Al Noor Trading",
		OpeningBalance: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	// Two reads: the first caches the supplier in redis, the second must
	// come back from the cache with the same balance.
	for i := 0; i < 2; i++ {
		got, err := models.GetSupplier(ctx, supplier.ID)
		if err != nil {
			t.Fatalf("GetSupplier (warm %d): %v", i, err)
		}
		if got.TotalBalance.Cmp(decimal.NewFromInt(1000)) != 0 {
			t.Fatalf("warm %d: expected total_balance=1000; got %s", i, got.TotalBalance.String())
		}
	}

	// A purchase raises what the business owes. The cached supplier must be
	// invalidated, so the next read reflects the new balance immediately.
	if _, err := models.CreatePurchase(ctx, &models.NewPurchase{
		SupplierName:  supplier.Name,
		PurchaseDate:  time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
		PurchasePrice: decimal.NewFromInt(250),
	}); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}
	afterPurchase, err := models.GetSupplier(ctx, supplier.ID)
	if err != nil {
		t.Fatalf("GetSupplier (after purchase): %v", err)
	}
	if afterPurchase.TotalBalance.Cmp(decimal.NewFromInt(1250)) != 0 {
		t.Fatalf("after purchase: expected total_balance=1250; got %s", afterPurchase.TotalBalance.String())
	}

	// Same for a payment lowering the balance.
	if _, err := models.CreateSupplierPayment(ctx, &models.NewSupplierPayment{
		SupplierName:  supplier.Name,
		PaymentDate:   time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC),
		PaymentAmount: decimal.NewFromInt(100),
	}); err != nil {
		t.Fatalf("CreateSupplierPayment: %v", err)
	}
	afterPayment, err := models.GetSupplier(ctx, supplier.ID)
	if err != nil {
		t.Fatalf("GetSupplier (after payment): %v", err)
	}
	if afterPayment.TotalBalance.Cmp(decimal.NewFromInt(1150)) != 0 {
		t.Fatalf("after payment: expected total_balance=1150; got %s", afterPayment.TotalBalance.String())
	}

	// The cached supplier list must have been dropped too.
	list, err := models.GetSuppliers(ctx, nil)
	if err != nil {
		t.Fatalf("GetSuppliers: %v", err)
	}
	if len(list) != 1 || list[0].TotalBalance.Cmp(decimal.NewFromInt(1150)) != 0 {
		t.Fatalf("supplier list stale: %+v", list)
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("daftar-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("daftar-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=daftar_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// Example: "127.0.0.1:49154\n"
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
