package cmd

import (
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateUpdateOrderStateCommandHandler() commands.UpdateOrderStateCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStateCommandHandler(f)
}

func (c *CompositionRoot) CreateReturnFromRejectionCommandHandler() commands.ReturnFromRejectionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReturnFromRejectionCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateConsultingOrderCommandHandler() commands.CreateConsultingOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateConsultingOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.CreateUpdateOrderStateCommandHandler())
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(
		services.NewDeliveryStatusResolver(),
		c.CreateUpdateOrderStateCommandHandler(),
	)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.createOrderRepository())
}

func (c *CompositionRoot) CreateGetOrdersByStateQueryHandler() queries.GetOrdersByStateQueryHandler {
	return queries.NewGetOrdersByStateQueryHandler(c.createOrderRepository())
}

func (c *CompositionRoot) CreateGetPharmacyOrdersQueryHandler() queries.GetPharmacyOrdersQueryHandler {
	return queries.NewGetPharmacyOrdersQueryHandler(c.createOrderRepository())
}

// createOrderRepository builds a repository outside any transaction, for
// read-only query handlers.
func (c *CompositionRoot) createOrderRepository() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
