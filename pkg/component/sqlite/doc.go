// Package sqlite provides the SQLite storage client.
//
// The client implements storage.Client on top of GORM with the pure-Go
// glebarez/sqlite driver, so binaries build without cgo. SQLite is the
// zero-dependency deployment mode: a single database file, or an in-memory
// database (":memory:") for tests and demos.
//
// # Basic Usage
//
//	opts := sqlite.NewOptions()
//	opts.Path = "data/atlas.db"
//
//	client, err := sqlite.New(opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	db := client.DB()
//	db.AutoMigrate(&User{})
//
// In-memory databases are restricted to a single pooled connection; each
// connection would otherwise see its own empty database.
package sqlite
