package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookzapp/bookz-server/internal/logger"
	"github.com/bookzapp/bookz-server/internal/service"
	"github.com/bookzapp/bookz-server/internal/validation"
)

// ProvideDepositoryService provides the placement grid service.
func ProvideDepositoryService(i do.Injector) (*service.DepositoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)
	return service.NewDepositoryService(storeHandle.Store, log.Logger, v), nil
}

// ProvideAuthorService provides the author catalog service.
func ProvideAuthorService(i do.Injector) (*service.AuthorService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)
	return service.NewAuthorService(storeHandle.Store, log.Logger, v), nil
}

// ProvideBookService provides the book catalog service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)
	return service.NewBookService(storeHandle.Store, log.Logger, v), nil
}

// ProvideCopyService provides the book copy lifecycle service.
func ProvideCopyService(i do.Injector) (*service.CopyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)
	return service.NewCopyService(storeHandle.Store, log.Logger, v), nil
}

// ProvideCustomerService provides the customer registry service.
func ProvideCustomerService(i do.Injector) (*service.CustomerService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)
	return service.NewCustomerService(storeHandle.Store, log.Logger, v), nil
}
