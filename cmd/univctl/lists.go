package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	contentBlockModel "university_backend/internals/features/home/content_blocks/model"
	quickServiceModel "university_backend/internals/features/home/quick_services/model"
	"university_backend/internals/features/ordering/model"
	"university_backend/internals/features/ordering/repository"
	"university_backend/internals/features/ordering/service"
	"university_backend/internals/helpers/metrics"
)

type listFlags struct {
	name string
	page string
}

func (f *listFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "list", "", "quick-services | content-blocks")
	cmd.Flags().StringVar(&f.page, "page", "", "Page slug (content-blocks)")
	_ = cmd.MarkFlagRequired("list")
}

func resolveList(name, page string) (model.ListRef, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "quick-services", "quick_services":
		return quickServiceModel.QuickServiceList(), nil
	case "content-blocks", "content_blocks":
		page = strings.ToLower(strings.TrimSpace(page))
		if page == "" {
			return model.ListRef{}, fmt.Errorf("--page wajib untuk content-blocks")
		}
		return contentBlockModel.PageList(page), nil
	}
	return model.ListRef{}, fmt.Errorf("list %q tidak dikenal (quick-services | content-blocks)", name)
}

func newSynchronizer(repo *repository.PositionRepository) *service.Synchronizer {
	return service.NewSynchronizer(repo, service.SynchronizerOptions{Observer: metrics.OrderingObserver{}})
}

func listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Lihat & perbaiki urutan list",
	}
	cmd.AddCommand(listsShowCmd(), listsNormalizeCmd(), listsMoveCmd())
	return cmd
}

func listsShowCmd() *cobra.Command {
	var lf listFlags
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Tampilkan urutan list",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := resolveList(lf.name, lf.page)
			if err != nil {
				return err
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			items, err := repository.NewPositionRepository(db).ListItems(cmd.Context(), list)
			if err != nil {
				return err
			}
			return printItems(cmd.OutOrStdout(), format, items)
		},
	}
	lf.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "table", "table | json | yaml")
	return cmd
}

type itemRow struct {
	Position int    `json:"position" yaml:"position"`
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
}

func printItems(w io.Writer, format string, items []model.OrderedItem) error {
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{Position: it.Position, ID: it.ID, Label: it.Payload.String("label")})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		return yaml.NewEncoder(w).Encode(rows)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "POS\tID\tLABEL")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Position, r.ID, r.Label)
		}
		return tw.Flush()
	}
	return fmt.Errorf("format %q tidak dikenal", format)
}

func listsNormalizeCmd() *cobra.Command {
	var lf listFlags
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Nomori ulang list menjadi 1..N tanpa mengubah urutan",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := resolveList(lf.name, lf.page)
			if err != nil {
				return err
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			return normalizeList(cmd.Context(), cmd.OutOrStdout(), db, list, dryRun)
		},
	}
	lf.bind(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Tampilkan perubahan tanpa menulis")
	return cmd
}

func normalizeList(ctx context.Context, w io.Writer, db *gorm.DB, list model.ListRef, dryRun bool) error {
	repo := repository.NewPositionRepository(db)
	items, err := repo.ListItems(ctx, list)
	if err != nil {
		return err
	}

	res := service.Normalize(items)
	if res.NoOp() {
		fmt.Fprintln(w, "already normalized")
		return nil
	}

	before := make(map[string]int, len(items))
	for _, it := range items {
		before[it.ID] = it.Position
	}
	for _, it := range res.Changed {
		fmt.Fprintf(w, "%s: %d -> %d\n", it.ID, before[it.ID], it.Position)
	}
	if dryRun {
		fmt.Fprintf(w, "dry-run: %d positions would change\n", len(res.Changed))
		return nil
	}

	if err := newSynchronizer(repo).Commit(ctx, list, res.Changed); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d positions updated\n", len(res.Changed))
	return nil
}

func listsMoveCmd() *cobra.Command {
	var lf listFlags
	var from, to int
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Pindahkan item dari index --from ke --to (0-based), sama seperti drag di UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := resolveList(lf.name, lf.page)
			if err != nil {
				return err
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			return moveItem(cmd.Context(), cmd.OutOrStdout(), db, list, from, to)
		},
	}
	lf.bind(cmd)
	cmd.Flags().IntVar(&from, "from", -1, "Index sumber")
	cmd.Flags().IntVar(&to, "to", -1, "Index tujuan")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func moveItem(ctx context.Context, w io.Writer, db *gorm.DB, list model.ListRef, from, to int) error {
	repo := repository.NewPositionRepository(db)
	notifier := service.NotifierFunc(func(_ context.Context, kind service.NotifyKind, msg string) {
		fmt.Fprintf(w, "[%s] %s\n", kind, msg)
	})
	adapter := service.NewListAdapter(list, repo, newSynchronizer(repo), notifier)
	if err := adapter.Load(ctx); err != nil {
		return err
	}
	if err := service.CheckIndices(len(adapter.Current()), from, to); err != nil {
		return err
	}

	res, err := adapter.DragEnd(ctx, from, to)
	if err != nil {
		return err
	}
	if res.NoOp() {
		fmt.Fprintln(w, "nothing to move")
		return nil
	}
	return printItems(w, "table", adapter.Current())
}
