package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/match --output domain/match --outpkg matchmock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RawRepository --dir ../domain/match --output domain/match --outpkg matchmock --filename raw_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name DatasetWriter --dir ../domain/match --output domain/match --outpkg matchmock --filename dataset_writer_mock.go
