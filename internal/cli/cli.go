// Package cli は端末からカートを操作する cobra コマンド。
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"storefront/internal/bootstrap"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/notify"
	"storefront/internal/usecase"

	"github.com/spf13/cobra"
)

// 操作の失敗は Notifier で表示済み。終了コードだけ 1 にする。
var errReported = errors.New("cart operation failed")

// OpenFunc はカートを開く。close はコマンド終了時に呼ぶ。
type OpenFunc func(ctx context.Context, notifier notify.Notifier) (store *usecase.CartStore, close func() error, err error)

type Options struct {
	Out  io.Writer
	Err  io.Writer
	Open OpenFunc
}

// Execute は終了コードを返す
func Execute(ctx context.Context, args []string) int {
	cmd := NewRootCmd(Options{Out: os.Stdout, Err: os.Stderr, Open: OpenFromEnv})
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}
	return 0
}

func NewRootCmd(opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "cart",
		Short:         "Manage the shopping cart from the terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.AddCommand(
		listCmd(opts),
		addCmd(opts),
		removeCmd(opts),
		updateCmd(opts),
	)
	return root
}

func listCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, opts, func(ctx context.Context, s *usecase.CartStore) error {
				return nil
			})
		},
	}
}

func addCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositive("product-id", args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, opts, func(ctx context.Context, s *usecase.CartStore) error {
				return s.AddProduct(ctx, id)
			})
		},
	}
}

func removeCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositive("product-id", args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, opts, func(ctx context.Context, s *usecase.CartStore) error {
				return s.RemoveProduct(ctx, id)
			})
		},
	}
}

func updateCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "update <product-id> <amount>",
		Short: "Set the amount of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositive("product-id", args[0])
			if err != nil {
				return err
			}
			// 0 や負数はカート側のエラーとして通知させる
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("amount must be a number: %q", args[1])
			}
			return withStore(cmd, opts, func(ctx context.Context, s *usecase.CartStore) error {
				return s.UpdateProductAmount(ctx, usecase.UpdateProductAmount{ProductID: id, Amount: amount})
			})
		},
	}
}

// 開く→操作→表（失敗しても今のカートを出す）
func withStore(cmd *cobra.Command, opts Options, op func(ctx context.Context, s *usecase.CartStore) error) error {
	ctx := cmd.Context()

	store, closeFn, err := opts.Open(ctx, notify.NewColorNotifier(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	opErr := op(ctx, store)
	if err := renderCart(cmd.OutOrStdout(), store.Cart()); err != nil {
		return err
	}
	if opErr != nil {
		if _, ok := usecase.AsCartError(opErr); ok {
			return errReported
		}
		return opErr
	}
	return nil
}

func parsePositive(name, v string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number: %q", name, v)
	}
	return n, nil
}

// OpenFromEnv は環境変数の設定でカタログと置き場を組み立てる。
// CLI は DB のカタログを持たないので CATALOG_URL が必須。
func OpenFromEnv(ctx context.Context, notifier notify.Notifier) (*usecase.CartStore, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	// CLI のログは warn 以上だけ（表示は表と通知が主）
	level := cfg.LogLevel
	if level == "info" {
		level = "warn"
	}
	log, err := logger.New(level, cfg.GoEnv)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := bootstrap.NewCatalog(cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	storage, err := bootstrap.OpenStorage(ctx, cfg, nil, log)
	if err != nil {
		return nil, nil, err
	}

	store := usecase.NewCartStore(ctx, catalog, storage, notifier,
		usecase.WithStorageKey(cfg.StorageKey),
		usecase.WithLogger(log),
	)

	closeFn := func() error {
		_ = log.Sync()
		return storage.Close()
	}
	return store, closeFn, nil
}
