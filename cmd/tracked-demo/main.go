package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	// Load LOG_LEVEL and friends from .env
	_ "github.com/joho/godotenv/autoload"

	"github.com/casualjim/tracked/entity"
	"github.com/casualjim/tracked/events"
	"github.com/casualjim/tracked/pkg/slogx"
	"github.com/casualjim/tracked/pkg/stdx"
	"github.com/casualjim/tracked/prop"
	"github.com/casualjim/tracked/report"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	slog.SetDefault(slog.New(
		slogx.NewZerologHandler(os.Stderr, slogx.ParseLevel(os.Getenv("LOG_LEVEL")), color.NoColor),
	))
}

func main() {
	seedPath := flag.String("seed", os.Getenv("TRACKED_SEED"), "path to a YAML seed board")
	dump := flag.Bool("dump", false, "pretty print the raw change report")
	flag.Parse()

	if err := run(*seedPath, *dump); err != nil {
		slog.Error("demo failed", slogx.Error(err))
		os.Exit(1)
	}
}

func run(seedPath string, dump bool) error {
	seed, err := loadSeed(seedPath)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := events.NewMetrics(registry)
	em := events.NewEmitter(
		events.WithName("board"),
		events.WithMetrics(metrics),
		events.WithPanicHandler(func(event string, recovered any) {
			fmt.Println(color.RedString("handler for %s panicked: %v", event, recovered))
		}),
	)

	b := newBoard(em, seed)
	watch(b)
	slog.Debug("board ready", slog.String("board", b.ID()), slog.Int("channels", len(em.EventNames())))

	fresh := newCard(em, cardSeed{Title: "Plan the retro", Estimate: 2})
	step("add a card on top", func() error {
		return b.cards.AddItems([]*card{fresh}, entity.StartIndex(0))
	})
	step("add an existing card", func() error {
		first, _ := b.cards.ItemAt(1)
		return b.cards.AddItems([]*card{first})
	})
	step("move card-3 to the second slot", func() error {
		return b.cards.MoveItem("card-3", 1)
	})
	step("rename card-2 with a title that is too long", func() error {
		c, _ := b.cards.Item("card-2")
		c.title.Set(strings.Repeat("very ", 10) + "flaky test")
		return nil
	})
	step("reject a negative estimate", func() error {
		c, _ := b.cards.Item("card-1")
		if c.estimate.Set(-4) {
			return fmt.Errorf("negative estimate accepted")
		}
		return nil
	})
	step("archive card-1", func() error {
		return b.archiveCard("card-1")
	})
	step("sort by estimate", func() error {
		b.cards.Sort(byEstimate)
		return nil
	})
	step("persist the new card", func() error {
		fresh.SetID("card-4")
		return nil
	})
	step("retitle the board", func() error {
		b.title.Set(seed.Board.Title + " (revised)")
		return nil
	})

	changes := b.ChangedProps()
	if err := render(changes); err != nil {
		return err
	}
	if dump {
		pp.Println(changes)
	}

	patch, err := report.Patch(changes)
	if err != nil {
		return err
	}
	fmt.Println(color.CyanString("patch:"), string(patch))

	saving := prop.NewLoadingStateEmitter(prop.LoadingIdle)
	saving.State.On(func(e prop.ValueChanged[prop.LoadingState]) {
		slog.Info("save state changed", slogx.Stringer("state", e.Value))
	})
	saving.SetLoading()
	b.Commit()
	saving.SetDone()
	fmt.Println(color.GreenString("committed, changed: %t, save state: %s", b.IsChanged(), saving.State.Get()))

	return printMetrics(registry)
}

func step(name string, fn func() error) {
	fmt.Println(color.New(color.Bold).Sprint("» " + name))
	if err := fn(); err != nil {
		fmt.Println("  " + color.RedString("error: %v", err))
	}
}

func watch(b *board) {
	b.PropertyChanged().On(func(e entity.PropertyChangedEvent) {
		fmt.Printf("  %s %s.%s\n", color.YellowString("propertyChanged"), e.EntityID, e.PropName)
	})
	b.cards.ItemsAdded().On(func(e entity.ItemsEvent[*card]) {
		fmt.Printf("  %s %d item(s), order now %v\n", color.MagentaString("itemsAdded"), len(e.Items), b.cards.Order().Get())
	})
	b.cards.ItemRemoved().On(func(e entity.ItemEvent[*card]) {
		fmt.Printf("  %s %s\n", color.MagentaString("itemRemoved"), e.Item.ID())
	})
	b.cards.ItemIDChanged().On(func(e entity.ItemIDChangedEvent[*card]) {
		fmt.Printf("  %s %s -> %s\n", color.MagentaString("itemIDChanged"), e.OldID, e.NewID)
	})
	b.cards.CollectionChanged().On(func(struct{}) {
		fmt.Printf("  %s %d card(s)\n", color.BlueString("collectionChanged"), len(b.cards.Items()))
	})
	for _, c := range b.cards.Items() {
		c.title.ViolationsChanged().On(func(v []prop.Violation) {
			fmt.Printf("  %s %s %v\n", color.RedString("violationsChanged"), c.ID(), v)
		})
	}
}

var renderer = stdx.Must(glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)))

func render(changes []entity.EntityChangedProps) error {
	out, err := renderer.Render("# Pending changes\n\n" + report.Markdown(changes))
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func printMetrics(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Printf("%s %s=%.0f\n", color.CyanString(mf.GetName()), labels(m.GetLabel()), m.GetCounter().GetValue())
		}
	}
	return nil
}

func labels[L interface {
	GetName() string
	GetValue() string
}](pairs []L) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.GetName() + ":" + p.GetValue()
	}
	return strings.Join(parts, ",")
}
