package inventory

import (
	"fmt"
	"log"
	"strings"

	"partstock-backend/internal/models"
	"partstock-backend/internal/partkey"

	"gorm.io/gorm"
)

// Filters for snapshot reads. DrawingNumber and Specification are substring
// matches when set. Finishing distinguishes "no filter" (nil) from "empty
// finishing only" (pointer to ""), matching how the query param arrives.
type Filters struct {
	DrawingNumber string
	Specification string
	Finishing     *string
}

type PositionWithHistory struct {
	Item     models.InventoryItem
	Inbound  []models.InboundRecord
	Outbound []models.OutboundRecord
}

type Page struct {
	Items      []PositionWithHistory
	TotalItems int64
	TotalPages int
	Page       int
}

// ListInventory serves one page of stock positions ordered by (drawing number,
// specification), each enriched with its contributing ledger rows. The join is
// one bulk query per ledger for the whole page, re-matched in memory, so the
// query count stays constant regardless of page size.
func ListInventory(db *gorm.DB, f Filters, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := applyFilters(db.Model(&models.InventoryItem{}), f).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting inventory items: %w", err)
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	var items []models.InventoryItem
	if err := applyFilters(db.Model(&models.InventoryItem{}), f).
		Order("drawing_number, specification").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("fetching inventory items: %w", err)
	}

	result := &Page{
		Items:      make([]PositionWithHistory, 0, len(items)),
		TotalItems: total,
		TotalPages: totalPages,
		Page:       page,
	}
	if len(items) == 0 {
		return result, nil
	}

	where, args := pageCondition(items)

	var inbound []models.InboundRecord
	if err := db.Where(where, args...).Order("date DESC").Find(&inbound).Error; err != nil {
		return nil, fmt.Errorf("fetching inbound history: %w", err)
	}
	var outbound []models.OutboundRecord
	if err := db.Where(where, args...).Order("date DESC").Find(&outbound).Error; err != nil {
		return nil, fmt.Errorf("fetching outbound history: %w", err)
	}

	for _, item := range items {
		key := itemKey(item)
		pos := PositionWithHistory{
			Item:     item,
			Inbound:  make([]models.InboundRecord, 0),
			Outbound: make([]models.OutboundRecord, 0),
		}
		for _, r := range inbound {
			if key.Matches(inboundKey(r)) {
				pos.Inbound = append(pos.Inbound, r)
			}
		}
		for _, r := range outbound {
			if key.Matches(outboundKey(r)) {
				pos.Outbound = append(pos.Outbound, r)
			}
		}
		result.Items = append(result.Items, pos)
	}

	return result, nil
}

// ListItems is the plain snapshot lookup without the ledger join.
func ListItems(db *gorm.DB, f Filters) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := applyFilters(db.Model(&models.InventoryItem{}), f).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("fetching inventory items: %w", err)
	}
	return items, nil
}

func applyFilters(q *gorm.DB, f Filters) *gorm.DB {
	if f.DrawingNumber != "" {
		q = q.Where("drawing_number LIKE ?", "%"+f.DrawingNumber+"%")
	}
	if f.Specification != "" {
		q = q.Where("specification LIKE ?", "%"+f.Specification+"%")
	}
	if f.Finishing != nil {
		if *f.Finishing == "" {
			q = q.Where("(finishing IS NULL OR finishing = '')")
		} else {
			q = q.Where("finishing LIKE ?", "%"+*f.Finishing+"%")
		}
	}
	return q
}

// pageCondition ORs the part-key predicates of every position on the page.
func pageCondition(items []models.InventoryItem) (string, []any) {
	conds := make([]string, 0, len(items))
	var args []any
	for _, item := range items {
		c, a := partkey.Condition(itemKey(item))
		conds = append(conds, c)
		args = append(args, a...)
	}
	return strings.Join(conds, " OR "), args
}

// Columns the suggestion endpoints may query.
const (
	SuggestDrawingNumber = "drawing_number"
	SuggestSpecification = "specification"
)

// Suggest returns up to limit distinct values of the column across both
// ledgers and the snapshot, filtered by substring.
func Suggest(db *gorm.DB, column, term string, limit int) ([]string, error) {
	switch column {
	case SuggestDrawingNumber, SuggestSpecification:
	default:
		return nil, fmt.Errorf("unsupported suggestion column: %s", column)
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT value FROM (
			SELECT %[1]s AS value FROM inbound
			UNION
			SELECT %[1]s FROM outbound
			UNION
			SELECT %[1]s FROM inventory
		) AS combined
		WHERE value LIKE ?
		LIMIT ?`, column)

	values := make([]string, 0, limit)
	if err := db.Raw(query, "%"+term+"%", limit).Scan(&values).Error; err != nil {
		return nil, fmt.Errorf("fetching suggestions: %w", err)
	}
	return values, nil
}

// DeleteByCondition removes the matching snapshot position and best-effort
// deletes the matching ledger rows. The snapshot delete is authoritative:
// ledger cleanup failures are logged, not escalated. Returns
// gorm.ErrRecordNotFound when no position matches.
func DeleteByCondition(db *gorm.DB, key partkey.Key) error {
	cond, args := partkey.Condition(key)

	res := db.Where(cond, args...).Delete(&models.InventoryItem{})
	if res.Error != nil {
		return fmt.Errorf("deleting inventory items: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := db.Where(cond, args...).Delete(&models.InboundRecord{}).Error; err != nil {
		log.Println("Failed to delete matching inbound rows:", err)
	}
	if err := db.Where(cond, args...).Delete(&models.OutboundRecord{}).Error; err != nil {
		log.Println("Failed to delete matching outbound rows:", err)
	}

	return nil
}
