package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/player --output domain/player --outpkg playermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name StatsRepository --dir ../domain/player --output domain/player --outpkg playermock --filename stats_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/grid --output domain/grid --outpkg gridmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name GuessRepository --dir ../domain/grid --output domain/grid --outpkg gridmock --filename guess_repository_mock.go
