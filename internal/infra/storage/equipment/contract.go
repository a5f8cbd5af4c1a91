package equipment

import "github.com/m04kA/gym-booking-service/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
