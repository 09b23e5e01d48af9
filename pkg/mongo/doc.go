// Package mongo provides helpers for connecting to MongoDB from
// sessionguard based applications.
//
// It wraps the official mongo-driver with retrying connection setup and a
// health-check helper. Inside this repository it backs
// sessionlog.MongoStorage; the package itself carries no domain logic.
//
// # Usage
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//	    panic(err)
//	}
//
//	ctx := context.Background()
//	db, err := mongo.NewWithDatabase(ctx, cfg, "sessionguard")
//	if err != nil {
//	    panic(err)
//	}
//
//	storage := sessionlog.NewMongoStorage(db.Collection("session_events"))
//
// Register a health-check in your observability stack:
//
//	checker := mongo.Healthcheck(db.Client())
//	if err := checker(ctx); err != nil {
//	    // mongo is not healthy
//	}
package mongo
