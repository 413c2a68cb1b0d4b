package services

import (
	"fleet-workhours/internal/repository/sqlstore"
	"fleet-workhours/internal/validation"
	"fleet-workhours/internal/workhours"
)

// NewServiceContainer wires every service over one repository and calculator
func NewServiceContainer(repo sqlstore.Repository, calc workhours.Calculator, v *validation.Validator, clock Clock) *ServiceContainer {
	workOrders := NewWorkOrderService(repo, calc, v, clock)
	return &ServiceContainer{
		WorkOrderService: workOrders,
		PauseService:     NewPauseService(repo, calc, v, clock),
		ScheduleService:  NewScheduleService(repo, calc, v),
		ReportingService: NewReportingService(repo, calc, workOrders, clock),
	}
}
