//go:build integration
// +build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"
)

// One Mongo container serves a whole package's integration tests; each
// test isolates itself with its own database name instead.
var (
	sharedContainer     *MongoDBContainer
	sharedContainerErr  error
	sharedContainerOnce sync.Once
	sharedContainerMu   sync.RWMutex
)

// GetSharedMongoDB starts the package-shared MongoDB container on first
// use and returns it afterwards. Pair with CleanupSharedMongoDB in
// TestMain.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedContainerOnce.Do(func() {
		sharedContainerMu.Lock()
		defer sharedContainerMu.Unlock()
		sharedContainer, sharedContainerErr = SetupMongoDB(ctx)
	})

	sharedContainerMu.RLock()
	defer sharedContainerMu.RUnlock()
	if sharedContainerErr != nil {
		return nil, sharedContainerErr
	}
	return sharedContainer, nil
}

// CleanupSharedMongoDB tears the shared container down after m.Run().
func CleanupSharedMongoDB(ctx context.Context) error {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer == nil {
		return nil
	}
	return sharedContainer.Cleanup(ctx)
}

// SetupTestMainWithMongoDB runs a package's tests against the shared
// container:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	if err := CleanupSharedMongoDB(ctx); err != nil {
		// Docker reaps the container anyway; the run already has a result.
		_, _ = os.Stderr.WriteString("Warning: failed to cleanup shared MongoDB container: " + err.Error() + "\n")
	}
	return code
}

// GetSharedContainerURI returns the shared container's connection URI.
// Panics when called before GetSharedMongoDB.
func GetSharedContainerURI() string {
	sharedContainerMu.RLock()
	defer sharedContainerMu.RUnlock()

	if sharedContainer == nil {
		panic("shared MongoDB container not initialized - call GetSharedMongoDB first")
	}
	return sharedContainer.URI
}

// SanitizeDBName turns a test name (which may contain subtest slashes)
// into a valid, unique MongoDB database name.
func SanitizeDBName(testName string) string {
	var b []rune
	for _, r := range testName {
		if r == '/' || r == '\\' {
			r = '_'
		}
		b = append(b, r)
	}
	name := string(b)
	if len(name) > 50 {
		name = name[:50]
	}
	return name + "_" + fmt.Sprintf("%d", time.Now().UnixNano()%1000000)
}
