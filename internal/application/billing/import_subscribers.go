package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

// importBatchSize tamaño de lote para los inserts de la importación.
const importBatchSize = 100

// seededPackage nombre y precio por defecto para las velocidades conocidas.
type seededPackage struct {
	Name  string
	Price decimal.Decimal
}

// seededPackages velocidades ya comercializadas. Una velocidad desconocida
// crea "Package N Mbps" a precio 0 para que un admin lo complete después.
var seededPackages = map[int]seededPackage{
	5:  {Name: "Basic", Price: decimal.NewFromInt(500)},
	10: {Name: "Standard", Price: decimal.NewFromInt(750)},
	15: {Name: "Premium", Price: decimal.NewFromInt(1000)},
	20: {Name: "Package 20 Mbps", Price: decimal.NewFromInt(2000)},
	30: {Name: "Package 30 Mbps", Price: decimal.NewFromInt(3000)},
	50: {Name: "Package 50 Mbps", Price: decimal.NewFromInt(5000)},
}

// ImportSubscribersUseCase importación masiva de suscriptores desde el router.
// Deduplica por username contra los clientes locales y autoderiva el plan
// desde el prefijo numérico del profile PPP.
type ImportSubscribersUseCase struct {
	source       SubscriberSource
	customerRepo repository.CustomerRepository
	packageRepo  repository.PackageRepository
	log          *logger.Logger

	titler cases.Caser
}

// NewImportSubscribersUseCase construye el caso de uso.
func NewImportSubscribersUseCase(
	source SubscriberSource,
	customerRepo repository.CustomerRepository,
	packageRepo repository.PackageRepository,
	log *logger.Logger,
) *ImportSubscribersUseCase {
	return &ImportSubscribersUseCase{
		source:       source,
		customerRepo: customerRepo,
		packageRepo:  packageRepo,
		log:          log,
		titler:       cases.Title(language.Und),
	}
}

// Import trae los secrets PPP del router y crea los clientes que falten.
func (uc *ImportSubscribersUseCase) Import(ctx context.Context) (*dto.ImportResult, error) {
	subscribers, err := uc.source.ListSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar suscriptores del router: %w", err)
	}

	existing, err := uc.customerRepo.ListUsernames(ctx)
	if err != nil {
		return nil, fmt.Errorf("usernames locales: %w", err)
	}

	// Cache de planes por velocidad para no golpear la DB por cada suscriptor.
	packagesBySpeed := map[int]*entity.Package{}

	result := &dto.ImportResult{Fetched: len(subscribers)}
	now := time.Now()
	var batch []*entity.Customer

	for _, sub := range subscribers {
		if sub.Username == "" || existing[sub.Username] {
			result.Skipped++
			continue
		}

		speed := SpeedFromProfile(sub.Profile)
		pkg, err := uc.packageForSpeed(ctx, speed, packagesBySpeed, &result.Packages)
		if err != nil {
			return nil, err
		}

		packageID := ""
		if pkg != nil {
			packageID = pkg.ID
		}
		batch = append(batch, &entity.Customer{
			ID:             uuid.New().String(),
			Name:           uc.displayName(sub.Username),
			Address:        sub.Comment,
			PackageID:      packageID,
			IsActive:       !sub.Disabled,
			SecretID:       sub.SecretID,
			Username:       sub.Username,
			Password:       sub.Password,
			MACAddress:     sub.LastCallerID,
			ConnectionType: connectionTypeFromService(sub.Service),
			Status:         entity.StatusActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		existing[sub.Username] = true
		result.Created++

		if len(batch) >= importBatchSize {
			if err := uc.customerRepo.BulkCreate(ctx, batch); err != nil {
				return nil, fmt.Errorf("insertar lote de clientes: %w", err)
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := uc.customerRepo.BulkCreate(ctx, batch); err != nil {
			return nil, fmt.Errorf("insertar lote final de clientes: %w", err)
		}
	}

	uc.log.Info().
		Int("fetched", result.Fetched).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("packages_created", result.Packages).
		Msg("importación de suscriptores completada")

	return result, nil
}

// packageForSpeed busca el plan de la velocidad o lo crea con los datos sembrados.
func (uc *ImportSubscribersUseCase) packageForSpeed(
	ctx context.Context,
	speed int,
	cache map[int]*entity.Package,
	created *int,
) (*entity.Package, error) {
	if speed <= 0 {
		return nil, nil
	}
	if pkg, ok := cache[speed]; ok {
		return pkg, nil
	}
	pkg, err := uc.packageRepo.GetBySpeed(ctx, speed)
	if err != nil {
		return nil, fmt.Errorf("plan por velocidad: %w", err)
	}
	if pkg == nil {
		seed, known := seededPackages[speed]
		if !known {
			seed = seededPackage{
				Name:  fmt.Sprintf("Package %d Mbps", speed),
				Price: decimal.Zero,
			}
		}
		now := time.Now()
		pkg = &entity.Package{
			ID:        uuid.New().String(),
			Name:      seed.Name,
			SpeedMbps: speed,
			Price:     seed.Price,
			Status:    entity.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.packageRepo.Create(ctx, pkg); err != nil {
			return nil, fmt.Errorf("crear plan %d Mbps: %w", speed, err)
		}
		*created++
	}
	cache[speed] = pkg
	return pkg, nil
}

// displayName deriva el nombre visible desde el username del router
// (convención "zona.nombre": se toma lo que sigue al punto, capitalizado).
func (uc *ImportSubscribersUseCase) displayName(username string) string {
	name := username
	if i := strings.IndexByte(username, '.'); i >= 0 && i+1 < len(username) {
		name = username[i+1:]
	}
	return uc.titler.String(name)
}

// SpeedFromProfile extrae el prefijo numérico del nombre del profile PPP
// (ej: "10Mbps_Home" -> 10). Sin prefijo numérico devuelve 0.
func SpeedFromProfile(profile string) int {
	speed := 0
	for _, r := range profile {
		if r < '0' || r > '9' {
			break
		}
		speed = speed*10 + int(r-'0')
	}
	return speed
}

// connectionTypeFromService mapea el service del secret PPP al tipo local.
func connectionTypeFromService(service string) string {
	if strings.EqualFold(service, "pppoe") {
		return entity.ConnectionPPPoE
	}
	return entity.ConnectionDHCP
}
