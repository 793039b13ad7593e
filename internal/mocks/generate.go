package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/year --output domain/year --outpkg yearmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/user --output domain/user --outpkg usermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/participation --output domain/participation --outpkg participationmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name BoardSource --dir ../usecase --output usecase --outpkg usecasemock --filename board_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ProfileSource --dir ../usecase --output usecase --outpkg usecasemock --filename profile_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LanguageSource --dir ../usecase --output usecase --outpkg usecasemock --filename language_source_mock.go
