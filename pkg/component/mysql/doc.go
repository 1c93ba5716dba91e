// Package mysql provides the MySQL storage client.
//
// The client implements storage.Client on top of GORM with connection
// pooling, health checking, and context-aware creation. Options are defined
// in pkg/options/mysql and re-exported here.
//
// # Basic Usage
//
//	opts := mysql.NewOptions()
//	opts.Host = "localhost"
//	opts.Database = "atlas"
//
//	client, err := mysql.New(opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Use GORM directly for queries and migrations.
//	db := client.DB()
//	db.AutoMigrate(&User{})
//
// # Health Checking
//
// Register the checker with the health middleware so /readyz reflects
// database connectivity:
//
//	server.Health().RegisterChecker("mysql", client.Health())
//
// HealthWithStats additionally reports connection pool statistics for
// monitoring.
//
// # Thread Safety
//
// The client is safe for concurrent use; GORM and database/sql handle
// connection pooling internally.
package mysql
