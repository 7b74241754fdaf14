package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/ruralep/platform/pkg/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.StoreConfig{
		Path:      fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		KeyPrefix: "rep",
	}
	client, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSaveLoadRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	type item struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, client.Save(ctx, "rep_things", []item{{Name: "basket", Count: 2}}))

	var loaded []item
	found, err := client.Load(ctx, "rep_things", &loaded)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, loaded, 1)
	require.Equal(t, "basket", loaded[0].Name)
}

func TestSaveReplacesWholeValue(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Save(ctx, "rep_list", []string{"a", "b", "c"}))
	require.NoError(t, client.Save(ctx, "rep_list", []string{"z"}))

	var loaded []string
	found, err := client.Load(ctx, "rep_list", &loaded)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{"z"}, loaded)
}

func TestLoadAbsentKeyLeavesDefault(t *testing.T) {
	client := newTestClient(t)

	loaded := []string{"default"}
	found, err := client.Load(context.Background(), "rep_missing", &loaded)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, []string{"default"}, loaded)
}

func TestLoadCorruptValueFallsBackSilently(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	// write garbage straight into the table, bypassing Save
	err := client.conn.WithContext(ctx).Create(&record{Key: "rep_users", Value: "{not json"}).Error
	require.NoError(t, err)

	loaded := []string{"default"}
	found, loadErr := client.Load(ctx, "rep_users", &loaded)
	require.NoError(t, loadErr)
	require.False(t, found)
	require.Equal(t, []string{"default"}, loaded)
}

func TestHas(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	has, err := client.Has(ctx, "rep_users")
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, client.Save(ctx, "rep_users", []string{}))

	has, err = client.Has(ctx, "rep_users")
	require.NoError(t, err)
	require.True(t, has)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *Tx) error {
		if err := tx.Save(ctx, "rep_a", "one"); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	has, hasErr := client.Has(ctx, "rep_a")
	require.NoError(t, hasErr)
	require.False(t, has, "expected rollback to discard the write")
}

func TestWithTxCommitsAllWrites(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *Tx) error {
		if err := tx.Save(ctx, "rep_a", "one"); err != nil {
			return err
		}
		return tx.Save(ctx, "rep_b", "two")
	})
	require.NoError(t, err)

	for _, key := range []string{"rep_a", "rep_b"} {
		has, hasErr := client.Has(ctx, key)
		require.NoError(t, hasErr)
		require.True(t, has)
	}
}

func TestKeysCarryPrefix(t *testing.T) {
	keys := NewKeys("demo")
	require.Equal(t, "demo_users", keys.Users)
	require.Equal(t, "demo_session", keys.Session)

	fallback := NewKeys("")
	require.Equal(t, "rep_orders", fallback.Orders)
}
