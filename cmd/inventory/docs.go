package main

// @title Stock Ledger API
// @version 1.0
// @description Single-site inventory and transaction ledger with spreadsheet import and monthly reconciliation

// @host localhost:8082
// @BasePath /

// @tag.name Inventory
// @tag.description Inventory item endpoints

// @tag.name Transactions
// @tag.description Ledger endpoints

// @tag.name Imports
// @tag.description Spreadsheet import endpoints

// @tag.name Reports
// @tag.description Reconciliation and stock status endpoints

// @tag.name Migration
// @tag.description Export and restore endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
