package routes

// Routes package cung cấp tất cả routing functions cho Address Classifier Service
//
// Cấu trúc:
// - api.go: API routes (/v1/*)
// - web.go: Web routes (/, /docs, /status)
//
// Sử dụng:
// routes.SetupAllRoutes(router, addressController, adminController)
