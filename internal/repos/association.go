package repos

import (
    "context"

    "gorm.io/gorm"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/types"
)

// ContactAssociator manages the contact set of any ContactOwner. Create
// flows add, update flows replace the whole set, and the attach endpoint
// only adds.
type ContactAssociator interface {
    AssociateAdd(ctx context.Context, tx *gorm.DB, owner types.ContactOwner, contacts []*types.Contact) error
    AssociateReplaceAll(ctx context.Context, tx *gorm.DB, owner types.ContactOwner, contacts []*types.Contact) error
    Detach(ctx context.Context, tx *gorm.DB, owner types.ContactOwner, contactIDs []uint) error
    Load(ctx context.Context, tx *gorm.DB, owner types.ContactOwner) ([]*types.Contact, error)
}

type contactAssociator struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewContactAssociator(db *gorm.DB, baseLog *logger.Logger) ContactAssociator {
    return &contactAssociator{db: db, log: baseLog.With("repo", "ContactAssociator")}
}

func (ca *contactAssociator) conn(tx *gorm.DB) *gorm.DB {
    if tx == nil {
        return ca.db
    }
    return tx
}

func (ca *contactAssociator) AssociateAdd(ctx context.Context, tx *gorm.DB, owner types.ContactOwner, contacts []*types.Contact) error {
    ca.log.Debug("Associating contacts", "owner", owner.TableName(), "ownerID", owner.GetID(), "count", len(contacts))
    return appendAssociation(ctx, ca.conn(tx), owner, "Contacts", contacts)
}

func (ca *contactAssociator) AssociateReplaceAll(ctx context.Context, tx *gorm.DB, owner types.ContactOwner, contacts []*types.Contact) error {
    ca.log.Debug("Replacing contact set", "owner", owner.TableName(), "ownerID", owner.GetID(), "count", len(contacts))
    return replaceAssociation(ctx, ca.conn(tx), owner, "Contacts", contacts)
}

func (ca *contactAssociator) Detach(ctx context.Context, tx *gorm.DB, owner types.ContactOwner, contactIDs []uint) error {
    if len(contactIDs) == 0 {
        return nil
    }
    contacts := make([]*types.Contact, 0, len(contactIDs))
    for _, id := range contactIDs {
        contacts = append(contacts, &types.Contact{Base: types.Base{ID: id}})
    }
    ca.log.Debug("Detaching contacts", "owner", owner.TableName(), "ownerID", owner.GetID(), "contactIDs", contactIDs)
    return ca.conn(tx).WithContext(ctx).Model(owner).Association("Contacts").Delete(contacts)
}

func (ca *contactAssociator) Load(ctx context.Context, tx *gorm.DB, owner types.ContactOwner) ([]*types.Contact, error) {
    var contacts []*types.Contact
    if err := ca.conn(tx).WithContext(ctx).Model(owner).Order("contacts.id").Association("Contacts").Find(&contacts); err != nil {
        return nil, err
    }
    return contacts, nil
}

func appendAssociation[V any](ctx context.Context, tx *gorm.DB, owner any, name string, values []*V) error {
    if len(values) == 0 {
        return nil
    }
    return tx.WithContext(ctx).Model(owner).Association(name).Append(values)
}

// replaceAssociation leaves exactly values linked. Rows dropped from the set
// lose their pivot entry only; the related records are kept.
func replaceAssociation[V any](ctx context.Context, tx *gorm.DB, owner any, name string, values []*V) error {
    if len(values) == 0 {
        return tx.WithContext(ctx).Model(owner).Association(name).Clear()
    }
    return tx.WithContext(ctx).Model(owner).Association(name).Replace(values)
}
