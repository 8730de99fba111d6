//go:generate mockgen -source=../quote_repository.go      -destination=./mock_quote_repository.go      -package=mocks
//go:generate mockgen -source=../quote_cache.go           -destination=./mock_quote_cache.go           -package=mocks
//go:generate mockgen -source=../compatibility_checker.go -destination=./mock_compatibility_checker.go -package=mocks
//go:generate mockgen -source=../logger.go                -destination=./mock_logger.go                -package=mocks
//go:generate mockgen -source=../message_consumer.go      -destination=./mock_message_consumer.go      -package=mocks
//go:generate mockgen -source=../quote_read_service.go    -destination=./mock_quote_read_service.go    -package=mocks

package mocks
