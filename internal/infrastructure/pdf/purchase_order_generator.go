// Package pdf renders purchase orders as printable A4 documents.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company name          │  PO number + dates          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUPPLIER: name, contact, payment terms                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Product | Unit cost | Subtotal                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Tax / Shipping / TOTAL                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/MohamedNAGYYS/erp-system/internal/application/purchasing"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
)

var _ purchasing.OrderPDFGenerator = (*PurchaseOrderGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PurchaseOrderGenerator implements purchasing.OrderPDFGenerator with Maroto v2.
type PurchaseOrderGenerator struct {
	companyName string
}

// NewPurchaseOrderGenerator builds the generator. companyName appears as the
// issuing party in the header.
func NewPurchaseOrderGenerator(companyName string) *PurchaseOrderGenerator {
	return &PurchaseOrderGenerator{companyName: companyName}
}

// Generate renders the order and returns the PDF bytes.
func (g *PurchaseOrderGenerator) Generate(
	order *entity.PurchaseOrder,
	items []*entity.PurchaseOrderItem,
	supplier *entity.Supplier,
	productNames map[string]string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Purchase Order "+order.OrderNumber, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, g.companyName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items, productNames) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	if order.Notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRow(order.Notes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: company name (left), order number and dates (right).
func headerRow(order *entity.PurchaseOrder, companyName string) core.Row {
	orderDate := order.OrderDate.Format("02/01/2006")
	delivery := "—"
	if order.ExpectedDelivery != nil {
		delivery = order.ExpectedDelivery.Format("02/01/2006")
	}

	return row.New(20).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("PURCHASE ORDER", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Order date: "+orderDate, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Expected delivery: "+delivery, props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// supplierRow: recipient block with contact and agreed payment terms.
func supplierRow(supplier *entity.Supplier) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("SUPPLIER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(supplier.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Contact: %s   |   Email: %s   |   Phone: %s   |   Terms: %s",
				nonEmpty(supplier.ContactPerson, "—"),
				nonEmpty(supplier.Email, "—"),
				nonEmpty(supplier.Phone, "—"),
				supplier.PaymentTerms,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Product", 6, align.Left),
		h("Unit cost", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: one row per order line.
func tableItemRows(items []*entity.PurchaseOrderItem, productNames map[string]string) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		name := productNames[item.ProductID]
		if name == "" {
			name = item.ProductID
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", item.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+item.UnitCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+item.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: right-aligned totals block.
func totalsRow(order *entity.PurchaseOrder) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(30).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Tax:"),
			label("Shipping:"),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2,
			}),
		),
		col.New(3).Add(
			value("$"+order.Subtotal.StringFixed(2)),
			value("$"+order.TaxAmount.StringFixed(2)),
			value("$"+order.ShippingCost.StringFixed(2)),
			text.New("$"+order.TotalAmount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1,
			}),
		),
		col.New(3),
	)
}

func notesRow(notes string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("NOTES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
