package domain

// Service услуга мойки из каталога
// Справочные данные, загружаются из конфигурации и не меняются в рантайме
type Service struct {
	ID            int64
	Name          string
	Group         string
	TimeInMinutes int
	Price         float64
	PriceMpv      float64 // цена для минивэнов; 0 = как обычная
	Hidden        bool    // скрыта из пользовательского каталога
}

// PriceFor возвращает цену услуги для класса автомобиля
func (s Service) PriceFor(mpv bool) float64 {
	if mpv && s.PriceMpv > 0 {
		return s.PriceMpv
	}
	return s.Price
}

// ServiceCatalog каталог услуг с быстрым поиском по ID
type ServiceCatalog struct {
	byID  map[int64]Service
	order []int64
}

// NewServiceCatalog создает каталог из списка услуг
func NewServiceCatalog(services []Service) *ServiceCatalog {
	catalog := &ServiceCatalog{
		byID:  make(map[int64]Service, len(services)),
		order: make([]int64, 0, len(services)),
	}
	for _, svc := range services {
		if _, exists := catalog.byID[svc.ID]; exists {
			continue
		}
		catalog.byID[svc.ID] = svc
		catalog.order = append(catalog.order, svc.ID)
	}
	return catalog
}

// Get возвращает услугу по ID
func (c *ServiceCatalog) Get(id int64) (Service, bool) {
	svc, ok := c.byID[id]
	return svc, ok
}

// List возвращает услуги в порядке конфигурации
func (c *ServiceCatalog) List(includeHidden bool) []Service {
	result := make([]Service, 0, len(c.order))
	for _, id := range c.order {
		svc := c.byID[id]
		if svc.Hidden && !includeHidden {
			continue
		}
		result = append(result, svc)
	}
	return result
}

// TimeRequirement суммирует длительность выбранных услуг в минутах
// Длительность не зависит от класса автомобиля (MPV меняет только цену)
// ok == false, если хотя бы одна услуга не найдена в каталоге
func (c *ServiceCatalog) TimeRequirement(ids []int64) (int, bool) {
	total := 0
	for _, id := range ids {
		svc, found := c.byID[id]
		if !found {
			return 0, false
		}
		total += svc.TimeInMinutes
	}
	return total, true
}

// TotalPrice суммирует цену выбранных услуг с учетом класса автомобиля
func (c *ServiceCatalog) TotalPrice(ids []int64, mpv bool) (float64, bool) {
	total := 0.0
	for _, id := range ids {
		svc, found := c.byID[id]
		if !found {
			return 0, false
		}
		total += svc.PriceFor(mpv)
	}
	return total, true
}
