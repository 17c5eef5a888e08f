package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/apperror"
  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

// ContactOwnerService is a ResourceService for records holding a contact set.
// Create adds the inline contacts, update replaces the whole set and
// AttachContacts only ever adds.
type ContactOwnerService[T types.Entity] interface {
  ResourceService[T]
  AttachContacts(ctx context.Context, id uint, data map[string]any) (*T, error)
  DetachContact(ctx context.Context, id, contactID uint) (*T, error)
}

type contactOwnerService[T types.Entity] struct {
  *resourceService[T]
  contacts *contactWriter
}

func NewContactOwnerService[T types.Entity](
  baseLog     *logger.Logger,
  repo        repos.BaseRepo[T],
  contactRepo repos.ContactRepo,
  associator  repos.ContactAssociator,
  validator   *validation.Validator,
  writer      *audit.Writer,
  def         ResourceDef[T],
) ContactOwnerService[T] {
  return newContactOwnerService(baseLog, repo, contactRepo, associator, validator, writer, def)
}

func newContactOwnerService[T types.Entity](baseLog *logger.Logger, repo repos.BaseRepo[T], contactRepo repos.ContactRepo, associator repos.ContactAssociator, validator *validation.Validator, writer *audit.Writer, def ResourceDef[T]) *contactOwnerService[T] {
  cw := &contactWriter{contactRepo: contactRepo, associator: associator}
  def.AfterCreate = chainHooks(def.AfterCreate, func(ctx context.Context, tx *gorm.DB, item *T, data map[string]any) error {
    return cw.add(ctx, tx, asOwner(item), data)
  })
  def.AfterUpdate = chainHooks(def.AfterUpdate, func(ctx context.Context, tx *gorm.DB, item *T, data map[string]any) error {
    return cw.replace(ctx, tx, asOwner(item), data)
  })
  if len(def.Preloads) == 0 {
    def.Preloads = []string{"Contacts"}
  }
  return &contactOwnerService[T]{
    resourceService: newResourceService(baseLog, repo, validator, writer, def),
    contacts:        cw,
  }
}

func (cs *contactOwnerService[T]) AttachContacts(ctx context.Context, id uint, data map[string]any) (*T, error) {
  cs.log.Info("Starting AttachContacts now...", "id", id)
  //1) Owner must exist before validation
  owner, err := cs.load(ctx, nil, id)
  if err != nil {
    return nil, err
  }
  if err := cs.validator.Validate(ctx, validation.ContactAttachRules(), data); err != nil {
    return nil, err
  }

  //2) Create the contacts and add them to the existing set
  err = cs.writer.Write(ctx, audit.ActionCreate, func(tx *gorm.DB) (audit.Target, error) {
    if aErr := cs.contacts.add(ctx, tx, asOwner(owner), data); aErr != nil {
      return audit.Target{}, aErr
    }
    target := cs.target(owner)
    target.Description = fmt.Sprintf("Contatos adicionados: %s #%d", cs.table, id)
    target.Snapshot = data["contacts"]
    return target, nil
  })
  if err != nil {
    return nil, err
  }
  return cs.Get(ctx, id)
}

func (cs *contactOwnerService[T]) DetachContact(ctx context.Context, id, contactID uint) (*T, error) {
  cs.log.Info("Starting DetachContact now...", "id", id, "contactID", contactID)
  owner, err := cs.load(ctx, nil, id, "Contacts")
  if err != nil {
    return nil, err
  }
  linked := false
  for _, c := range asOwner(owner).GetContacts() {
    if c.ID == contactID {
      linked = true
      break
    }
  }
  if !linked {
    return nil, apperror.NewNotFound("Contato não vinculado a este registro.")
  }
  err = cs.writer.Write(ctx, audit.ActionUpdate, func(tx *gorm.DB) (audit.Target, error) {
    if dErr := cs.contacts.associator.Detach(ctx, tx, asOwner(owner), []uint{contactID}); dErr != nil {
      return audit.Target{}, fmt.Errorf("detach contact: %w", dErr)
    }
    target := cs.target(owner)
    target.Description = fmt.Sprintf("Contato #%d desvinculado: %s #%d", contactID, cs.table, id)
    target.Snapshot = map[string]uint{"contact_id": contactID}
    return target, nil
  })
  if err != nil {
    return nil, err
  }
  return cs.Get(ctx, id)
}

// contactWriter turns inline contact payloads into rows and links them.
type contactWriter struct {
  contactRepo repos.ContactRepo
  associator  repos.ContactAssociator
}

// add inserts every payload as a new contact and appends it to the owner.
func (cw *contactWriter) add(ctx context.Context, tx *gorm.DB, owner types.ContactOwner, data map[string]any) error {
  if !validation.Provided(data, "contacts") {
    return nil
  }
  payloads, err := contactPayloads(data)
  if err != nil {
    return err
  }
  contacts := make([]*types.Contact, 0, len(payloads))
  for _, p := range payloads {
    contacts = append(contacts, p.contact())
  }
  if _, err := cw.contactRepo.Create(ctx, tx, contacts); err != nil {
    return fmt.Errorf("create contacts: %w", err)
  }
  if err := cw.associator.AssociateAdd(ctx, tx, owner, contacts); err != nil {
    return fmt.Errorf("associate contacts: %w", err)
  }
  return nil
}

// replace edits payloads carrying an id in place, inserts the rest, and
// leaves exactly that set linked. It is a no-op when contacts was not sent.
func (cw *contactWriter) replace(ctx context.Context, tx *gorm.DB, owner types.ContactOwner, data map[string]any) error {
  if !validation.Provided(data, "contacts") {
    return nil
  }
  payloads, err := contactPayloads(data)
  if err != nil {
    return err
  }
  processed := make([]*types.Contact, 0, len(payloads))
  var fresh []*types.Contact
  for _, p := range payloads {
    if p.ID == nil {
      c := p.contact()
      fresh = append(fresh, c)
      processed = append(processed, c)
      continue
    }
    existing, gErr := cw.contactRepo.GetByID(ctx, tx, *p.ID)
    if gErr != nil {
      return fmt.Errorf("load contact #%d: %w", *p.ID, gErr)
    }
    if existing == nil {
      return apperror.NewNotFound("Contato não encontrado.")
    }
    p.applyTo(existing)
    if _, uErr := cw.contactRepo.Update(ctx, tx, []*types.Contact{existing}); uErr != nil {
      return fmt.Errorf("update contact #%d: %w", existing.ID, uErr)
    }
    processed = append(processed, existing)
  }
  if _, cErr := cw.contactRepo.Create(ctx, tx, fresh); cErr != nil {
    return fmt.Errorf("create contacts: %w", cErr)
  }
  if err := cw.associator.AssociateReplaceAll(ctx, tx, owner, processed); err != nil {
    return fmt.Errorf("sync contacts: %w", err)
  }
  return nil
}

func (p contactPayload) contact() *types.Contact {
  c := &types.Contact{}
  p.applyTo(c)
  return c
}

func (p contactPayload) applyTo(c *types.Contact) {
  data := map[string]any{"name": p.Name, "email": p.Email, "phone": p.Phone}
  setString(data, "name", &c.Name)
  setString(data, "email", &c.Email)
  setString(data, "phone", &c.Phone)
  c.Observation = nil
  if p.Observation != nil {
    setOptionalString(map[string]any{"observation": *p.Observation}, "observation", &c.Observation)
  }
}

func asOwner(item any) types.ContactOwner {
  owner, ok := item.(types.ContactOwner)
  if !ok {
    panic(fmt.Sprintf("%T does not hold contacts", item))
  }
  return owner
}

func chainHooks[T types.Entity](first, second Hook[T]) Hook[T] {
  if first == nil {
    return second
  }
  return func(ctx context.Context, tx *gorm.DB, item *T, data map[string]any) error {
    if err := first(ctx, tx, item, data); err != nil {
      return err
    }
    return second(ctx, tx, item, data)
  }
}
