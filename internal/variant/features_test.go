package variant_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/variant"
)

type selectionTestContext struct {
	product domain.Product
	cfg     variant.Config
	picker  *variant.Picker
	changed bool
}

func (c *selectionTestContext) reset() {
	c.product = domain.Product{ID: "gid://product/feature"}
	c.cfg = variant.DefaultConfig()
	c.picker = nil
	c.changed = false
}

func (c *selectionTestContext) aProductWithOptions(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		c.product.Options = append(c.product.Options, domain.Option{
			Name:   row.Cells[0].Value,
			Values: strings.Split(row.Cells[1].Value, ","),
		})
	}
	return nil
}

func (c *selectionTestContext) theVariants(table *godog.Table) error {
	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		v := domain.Variant{}
		for i, cell := range row.Cells {
			switch name := header[i].Value; name {
			case "id":
				v.ID = cell.Value
			case "available":
				v.AvailableForSale = cell.Value == "yes"
			case "stock":
				if cell.Value == "" {
					continue
				}
				n, err := strconv.Atoi(cell.Value)
				if err != nil {
					return fmt.Errorf("stock[%s]: %w", cell.Value, err)
				}
				v.QuantityAvailable = &n
			default:
				v.SelectedOptions = append(v.SelectedOptions, domain.SelectedOption{Name: name, Value: cell.Value})
			}
		}
		c.product.Variants = append(c.product.Variants, v)
	}
	return nil
}

func (c *selectionTestContext) stockAwareAvailability() error {
	c.cfg.StockAware = true
	return nil
}

func (c *selectionTestContext) theShopperOpensTheProduct() error {
	c.picker = variant.NewPicker(c.product, c.cfg)
	return nil
}

func (c *selectionTestContext) theShopperPicksFor(value, option string) error {
	if !c.picker.Select(option, value) {
		return fmt.Errorf("click on %s=%s was ignored", option, value)
	}
	return nil
}

func (c *selectionTestContext) theShopperCannotPickFor(value, option string) error {
	before := c.picker.Selection()
	if c.picker.Select(option, value) {
		return fmt.Errorf("click on %s=%s was accepted", option, value)
	}
	if after := c.picker.Selection(); !after.Equal(before) {
		return fmt.Errorf("refused click changed the selection from %v to %v", before, after)
	}
	return nil
}

func (c *selectionTestContext) theVariantIsForced(id string) error {
	c.changed = c.picker.Force(id)
	return nil
}

func (c *selectionTestContext) theSelectionIs(expected string) error {
	want := domain.Selection{}
	for _, pair := range strings.Split(expected, ",") {
		name, value, _ := strings.Cut(pair, "=")
		want[name] = value
	}
	if got := c.picker.Selection(); !got.Equal(want) {
		return fmt.Errorf("selection: want %v, got %v", want, got)
	}
	return nil
}

func (c *selectionTestContext) theResolvedVariantIs(id string) error {
	vm := c.picker.View()
	if vm.Variant == nil {
		return fmt.Errorf("no variant resolved, want %s", id)
	}
	if vm.Variant.ID != id {
		return fmt.Errorf("resolved variant: want %s, got %s", id, vm.Variant.ID)
	}
	return nil
}

func (c *selectionTestContext) theStockBadgeReads(text string) error {
	if got := c.picker.View().BadgeText; got != text {
		return fmt.Errorf("badge: want %q, got %q", text, got)
	}
	return nil
}

func (c *selectionTestContext) theValueOfIsUnavailable(value, option string) error {
	vv, err := c.valueView(option, value)
	if err != nil {
		return err
	}
	if vv.Available {
		return fmt.Errorf("%s=%s is available", option, value)
	}
	return nil
}

func (c *selectionTestContext) theValueOfShowsLeft(value, option string, stock int) error {
	vv, err := c.valueView(option, value)
	if err != nil {
		return err
	}
	if vv.Stock != stock {
		return fmt.Errorf("%s=%s stock: want %d, got %d", option, value, stock, vv.Stock)
	}
	return nil
}

func (c *selectionTestContext) theSelectionChanged() error {
	if !c.changed {
		return fmt.Errorf("selection did not change")
	}
	return nil
}

func (c *selectionTestContext) theSelectionDidNotChange() error {
	if c.changed {
		return fmt.Errorf("selection changed")
	}
	return nil
}

func (c *selectionTestContext) valueView(option, value string) (variant.ValueView, error) {
	for _, ov := range c.picker.View().Options {
		if ov.Name != option {
			continue
		}
		for _, vv := range ov.Values {
			if vv.Value == value {
				return vv, nil
			}
		}
	}
	return variant.ValueView{}, fmt.Errorf("no button for %s=%s", option, value)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &selectionTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a product with options:$`, tc.aProductWithOptions)
	ctx.Step(`^the variants:$`, tc.theVariants)
	ctx.Step(`^stock-aware availability$`, tc.stockAwareAvailability)
	ctx.Step(`^the shopper opens the product$`, tc.theShopperOpensTheProduct)

	ctx.Step(`^the shopper picks "([^"]*)" for "([^"]*)"$`, tc.theShopperPicksFor)
	ctx.Step(`^the shopper cannot pick "([^"]*)" for "([^"]*)"$`, tc.theShopperCannotPickFor)
	ctx.Step(`^the variant "([^"]*)" is forced$`, tc.theVariantIsForced)

	ctx.Step(`^the selection is "([^"]*)"$`, tc.theSelectionIs)
	ctx.Step(`^the resolved variant is "([^"]*)"$`, tc.theResolvedVariantIs)
	ctx.Step(`^the stock badge reads "([^"]*)"$`, tc.theStockBadgeReads)
	ctx.Step(`^the value "([^"]*)" of "([^"]*)" is unavailable$`, tc.theValueOfIsUnavailable)
	ctx.Step(`^the value "([^"]*)" of "([^"]*)" shows (\d+) left$`, tc.theValueOfShowsLeft)
	ctx.Step(`^the selection changed$`, tc.theSelectionChanged)
	ctx.Step(`^the selection did not change$`, tc.theSelectionDidNotChange)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/variant_selection.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
