package repos

import (
    "context"
    "testing"

    "gorm.io/gorm"

    "github.com/gondola-org/gondola-backend/internal/db"
    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/pagination"
    "github.com/gondola-org/gondola-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
    t.Helper()
    svc, err := db.NewSQLiteService(":memory:", logger.NewNop())
    if err != nil {
        t.Fatalf("open sqlite: %v", err)
    }
    if err := svc.AutoMigrateAll(); err != nil {
        t.Fatalf("migrate: %v", err)
    }
    return svc.DB()
}

func TestPaginateSecondPage(t *testing.T) {
    gdb := newTestDB(t)
    ctx := context.Background()
    repo := NewSectorRepo(gdb, logger.NewNop())
    var sectors []*types.Sector
    for i := 0; i < 12; i++ {
        sectors = append(sectors, &types.Sector{Name: "Setor"})
    }
    if _, err := repo.Create(ctx, nil, sectors); err != nil {
        t.Fatalf("create: %v", err)
    }
    items, total, err := repo.Paginate(ctx, nil, ListQuery{Params: pagination.Params{Page: 2, PerPage: 5}})
    if err != nil {
        t.Fatalf("paginate: %v", err)
    }
    if total != 12 || len(items) != 5 || items[0].ID != 6 {
        t.Fatalf("total=%d len=%d first=%d", total, len(items), items[0].ID)
    }
}

func TestPaginateTrashFilters(t *testing.T) {
    gdb := newTestDB(t)
    ctx := context.Background()
    repo := NewAgencyRepo(gdb, logger.NewNop())
    created, err := repo.Create(ctx, nil, []*types.Agency{{Name: "A"}, {Name: "B"}, {Name: "C"}})
    if err != nil {
        t.Fatalf("create: %v", err)
    }
    if err := repo.SoftDeleteByIDs(ctx, nil, []uint{created[1].ID}); err != nil {
        t.Fatalf("soft delete: %v", err)
    }
    cases := []struct {
        trash TrashFilter
        want  int64
    }{
        {TrashExcluded, 2},
        {TrashOnly, 1},
        {TrashIncluded, 3},
    }
    for _, c := range cases {
        _, total, err := repo.Paginate(ctx, nil, ListQuery{Params: pagination.Params{Page: 1, PerPage: 10}, Trash: c.trash})
        if err != nil {
            t.Fatalf("paginate: %v", err)
        }
        if total != c.want {
            t.Errorf("trash=%d total=%d want %d", c.trash, total, c.want)
        }
    }
    got, err := repo.GetByID(ctx, nil, created[1].ID)
    if err != nil || got != nil {
        t.Fatalf("trashed row should be hidden from GetByID, got %v err %v", got, err)
    }
}

func TestPaginateOrderingFallsBack(t *testing.T) {
    gdb := newTestDB(t)
    ctx := context.Background()
    repo := NewBrandRepo(gdb, logger.NewNop())
    if _, err := repo.Create(ctx, nil, []*types.Brand{{Name: "b"}, {Name: "c"}, {Name: "a"}}); err != nil {
        t.Fatalf("create: %v", err)
    }
    params := pagination.Params{Page: 1, PerPage: 10}
    items, _, err := repo.Paginate(ctx, nil, ListQuery{Params: params, OrderBy: "name", OrderDir: "desc", AllowedOrder: []string{"name", "id"}})
    if err != nil || items[0].Name != "c" {
        t.Fatalf("expected desc by name, got %v err %v", items, err)
    }
    items, _, err = repo.Paginate(ctx, nil, ListQuery{Params: params, OrderBy: "password; drop", AllowedOrder: []string{"name"}})
    if err != nil || items[0].Name != "b" {
        t.Fatalf("expected insertion order, got %v err %v", items, err)
    }
    items, _, err = repo.Paginate(ctx, nil, ListQuery{Params: params, Filters: map[string]any{"name": "a"}})
    if err != nil || len(items) != 1 {
        t.Fatalf("exact filter failed: %v err %v", items, err)
    }
}

func TestCompanySoftDeleteCascadesToStoresAndAssets(t *testing.T) {
    gdb := newTestDB(t)
    ctx := context.Background()
    log := logger.NewNop()
    companies := NewCompanyRepo(gdb, log)
    stores := NewStoreRepo(gdb, log)
    assets := NewAssetRepo(gdb, log)

    company, _ := companies.Create(ctx, nil, []*types.Company{{Name: "Rede"}})
    store, _ := stores.Create(ctx, nil, []*types.Store{{Name: "Loja", FKCompanie: company[0].ID, Cnpj: "12345678000190"}})
    if _, err := assets.Create(ctx, nil, []*types.Asset{{Name: "Ilha", FKStore: store[0].ID, Quantity: 1}}); err != nil {
        t.Fatalf("asset: %v", err)
    }

    if err := companies.SoftDeleteByIDs(ctx, nil, []uint{company[0].ID}); err != nil {
        t.Fatalf("soft delete: %v", err)
    }
    var liveStores, liveAssets, allStores int64
    gdb.Model(&types.Store{}).Count(&liveStores)
    gdb.Model(&types.Asset{}).Count(&liveAssets)
    gdb.Unscoped().Model(&types.Store{}).Count(&allStores)
    if liveStores != 0 || liveAssets != 0 || allStores != 1 {
        t.Fatalf("live stores=%d live assets=%d all stores=%d", liveStores, liveAssets, allStores)
    }
}

func TestCompanyFullDeleteCascades(t *testing.T) {
    gdb := newTestDB(t)
    ctx := context.Background()
    log := logger.NewNop()
    companies := NewCompanyRepo(gdb, log)
    stores := NewStoreRepo(gdb, log)
    contacts := NewContactAssociator(gdb, log)
    contactRepo := NewContactRepo(gdb, log)

    company, _ := companies.Create(ctx, nil, []*types.Company{{Name: "Rede"}})
    if _, err := stores.Create(ctx, nil, []*types.Store{{Name: "Loja", FKCompanie: company[0].ID, Cnpj: "12345678000190"}}); err != nil {
        t.Fatalf("store: %v", err)
    }
    jane, _ := contactRepo.Create(ctx, nil, []*types.Contact{{Name: "Jane", Email: "jane@x.com", Phone: "1"}})
    if err := contacts.AssociateAdd(ctx, nil, company[0], jane); err != nil {
        t.Fatalf("contacts: %v", err)
    }

    if err := companies.FullDeleteByIDs(ctx, nil, []uint{company[0].ID}); err != nil {
        t.Fatalf("full delete: %v", err)
    }
    var storeRows, pivotRows, contactRows int64
    gdb.Unscoped().Model(&types.Store{}).Count(&storeRows)
    gdb.Table("company_contacts").Count(&pivotRows)
    gdb.Model(&types.Contact{}).Count(&contactRows)
    if storeRows != 0 || pivotRows != 0 {
        t.Fatalf("stores=%d pivots=%d", storeRows, pivotRows)
    }
    if contactRows != 1 {
        t.Fatalf("contacts must survive owner deletion, got %d", contactRows)
    }
}

func TestContactAssociatorAddVersusReplace(t *testing.T) {
    gdb := newTestDB(t)
    ctx := context.Background()
    log := logger.NewNop()
    brands := NewBrandRepo(gdb, log)
    assoc := NewContactAssociator(gdb, log)

    contactRepo := NewContactRepo(gdb, log)

    brand, _ := brands.Create(ctx, nil, []*types.Brand{{Name: "Marca"}})
    first, err := contactRepo.Create(ctx, nil, []*types.Contact{{Name: "A", Email: "a@x.com", Phone: "1"}, {Name: "B", Email: "b@x.com", Phone: "2"}})
    if err != nil {
        t.Fatalf("contacts: %v", err)
    }
    second, _ := contactRepo.Create(ctx, nil, []*types.Contact{{Name: "C", Email: "c@x.com", Phone: "3"}})
    if err := assoc.AssociateAdd(ctx, nil, brand[0], first); err != nil {
        t.Fatalf("add: %v", err)
    }
    if err := assoc.AssociateAdd(ctx, nil, brand[0], second); err != nil {
        t.Fatalf("add: %v", err)
    }
    loaded, _ := assoc.Load(ctx, nil, brand[0])
    if len(loaded) != 3 {
        t.Fatalf("add should accumulate, got %d", len(loaded))
    }

    if err := assoc.AssociateReplaceAll(ctx, nil, brand[0], []*types.Contact{first[0]}); err != nil {
        t.Fatalf("replace: %v", err)
    }
    loaded, _ = assoc.Load(ctx, nil, brand[0])
    if len(loaded) != 1 || loaded[0].ID != first[0].ID {
        t.Fatalf("replace should keep only A, got %v", loaded)
    }

    if err := assoc.Detach(ctx, nil, brand[0], []uint{first[0].ID}); err != nil {
        t.Fatalf("detach: %v", err)
    }
    loaded, _ = assoc.Load(ctx, nil, brand[0])
    if len(loaded) != 0 {
        t.Fatalf("detach left %d contacts", len(loaded))
    }
    var contactRows int64
    gdb.Model(&types.Contact{}).Count(&contactRows)
    if contactRows != 3 {
        t.Fatalf("contacts must not be deleted by sync, got %d", contactRows)
    }
}

func TestActionGetByNameFold(t *testing.T) {
    gdb := newTestDB(t)
    ctx := context.Background()
    repo := NewActionRepo(gdb, logger.NewNop())
    if _, err := repo.Create(ctx, nil, []*types.Action{{Name: "Criou"}}); err != nil {
        t.Fatalf("create: %v", err)
    }
    got, err := repo.GetByNameFold(ctx, nil, "criou")
    if err != nil || got == nil || got.Name != "Criou" {
        t.Fatalf("got %v err %v", got, err)
    }
    missing, err := repo.GetByNameFold(ctx, nil, "Arquivou")
    if err != nil || missing != nil {
        t.Fatalf("expected nil for unknown verb, got %v err %v", missing, err)
    }
}

func TestParseActive(t *testing.T) {
    if ParseActive("true", TrashIncluded) != TrashExcluded {
        t.Error("true should keep live rows")
    }
    if ParseActive("false", TrashIncluded) != TrashOnly {
        t.Error("false should keep trashed rows")
    }
    if ParseActive("", TrashIncluded) != TrashIncluded {
        t.Error("absent should use default")
    }
}
