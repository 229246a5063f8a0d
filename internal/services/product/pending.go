package product

import (
	"context"
	"fmt"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShopSummary struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Address string             `json:"address,omitempty"`
	Open    bool               `json:"open"`
}

// PendingProduct is one entry of the admin moderation queue.
type PendingProduct struct {
	Product      domain.Product `json:"product"`
	SellerName   string         `json:"sellerName"`
	CategoryName string         `json:"categoryName,omitempty"`
	Shop         *ShopSummary   `json:"shop,omitempty"`
}

type seller struct {
	name string
	shop *domain.Shop
}

// ListPending returns the moderation queue of catalog, newest first. The
// standard catalog reads opening hours from the weekly schedule, the
// restricted catalog from the legacy open/close pair.
func (s *service) ListPending(ctx context.Context, catalog domain.Catalog) ([]PendingProduct, error) {
	products, err := s.repos.Products.ListByApprovalStatus(ctx, catalog, domain.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending products: %w", err)
	}

	sellers := make(map[primitive.ObjectID]seller)
	categories := make(map[primitive.ObjectID]string)

	out := make([]PendingProduct, 0, len(products))
	for _, p := range products {
		sel, ok := sellers[p.VendorID]
		if !ok {
			if sel, err = s.loadSeller(ctx, p.VendorID); err != nil {
				return nil, err
			}
			sellers[p.VendorID] = sel
		}

		item := PendingProduct{Product: p, SellerName: sel.name, CategoryName: p.CategoryLabel}
		if p.CategoryID != nil {
			name, ok := categories[*p.CategoryID]
			if !ok {
				cat, err := s.repos.Categories.FindByID(ctx, *p.CategoryID)
				if err != nil {
					return nil, fmt.Errorf("failed to load category: %w", err)
				}
				if cat != nil {
					name = cat.Name
				}
				categories[*p.CategoryID] = name
			}
			if name != "" {
				item.CategoryName = name
			}
		}

		if sel.shop != nil {
			summary := &ShopSummary{ID: sel.shop.ID, Name: sel.shop.Name, Address: sel.shop.Address}
			if catalog == domain.CatalogRestricted {
				summary.Open = s.hours.OpenNowDaily(sel.shop.OpensAt, sel.shop.ClosesAt)
			} else {
				summary.Open = s.hours.OpenNow(sel.shop.WorkingHoursJSON)
			}
			item.Shop = summary
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *service) loadSeller(ctx context.Context, vendorID primitive.ObjectID) (seller, error) {
	var sel seller
	v, err := s.repos.Vendors.FindByID(ctx, vendorID)
	if err != nil {
		return sel, fmt.Errorf("failed to load vendor: %w", err)
	}
	if v != nil {
		sel.name = v.Name
		if sel.name == "" {
			sel.name = v.BusinessName
		}
	}
	shop, err := s.repos.Shops.FindByVendorID(ctx, vendorID)
	if err != nil {
		return sel, fmt.Errorf("failed to load shop: %w", err)
	}
	sel.shop = shop
	return sel, nil
}
