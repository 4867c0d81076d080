// Package seed loads a development dataset: two users, the pet-shop catalog
// and a handful of historic sales. Running it twice is safe; it skips
// anything that already exists.
package seed

import (
	"context"
	"errors"

	"boletapos/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type productoSeed struct {
	nombre    string
	precio    int64
	stock     int
	categoria string
}

var categorias = []model.Categoria{
	{Nombre: "Alimentos", Descripcion: ptr("Alimento seco y humedo para mascotas")},
	{Nombre: "Accesorios", Descripcion: ptr("Correas, collares y juguetes")},
	{Nombre: "Higiene", Descripcion: ptr("Shampoo, arena y limpieza")},
	{Nombre: "Salud", Descripcion: ptr("Antiparasitarios y vitaminas")},
	{Nombre: "Habitat", Descripcion: ptr("Camas, jaulas y acuarios")},
}

var productos = []productoSeed{
	{"Alimento perro adulto 15kg", 32990, 25, "Alimentos"},
	{"Alimento gato adulto 10kg", 28990, 18, "Alimentos"},
	{"Alimento cachorro 8kg", 21990, 20, "Alimentos"},
	{"Lata comida humeda perro", 1990, 60, "Alimentos"},
	{"Lata comida humeda gato", 1790, 55, "Alimentos"},
	{"Snack dental perro", 4990, 30, "Alimentos"},
	{"Correa retractil 5m", 8990, 15, "Accesorios"},
	{"Collar ajustable mediano", 3990, 22, "Accesorios"},
	{"Juguete mordedor caucho", 2990, 40, "Accesorios"},
	{"Pelota lanzadora", 5490, 12, "Accesorios"},
	{"Arnes para paseo talla M", 11990, 10, "Accesorios"},
	{"Shampoo hipoalergenico 500ml", 6990, 18, "Higiene"},
	{"Arena sanitaria gato 10kg", 9990, 24, "Higiene"},
	{"Toallitas humedas mascota", 3490, 35, "Higiene"},
	{"Pipeta antipulgas perro", 7990, 28, "Salud"},
	{"Pipeta antipulgas gato", 7490, 26, "Salud"},
	{"Vitaminas articulares", 12990, 14, "Salud"},
	{"Cama acolchada mediana", 18990, 8, "Habitat"},
	{"Jaula transporte talla S", 24990, 6, "Habitat"},
	{"Rascador torre gato", 29990, 5, "Habitat"},
}

func ptr(s string) *string { return &s }

// Run inserts the development dataset. Existing rows (matched by rut/nombre)
// are left untouched.
func Run(ctx context.Context, db *gorm.DB) error {
	if err := seedUsuarios(ctx, db); err != nil {
		return err
	}
	if err := seedCatalogo(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("seed completado")
	return nil
}

func seedUsuarios(ctx context.Context, db *gorm.DB) error {
	users := []struct {
		nombre   string
		rut      string
		password string
		rol      string
	}{
		{"Administrador", "1-9", "admin123", model.RolAdmin},
		{"Juan Cajero", "2-7", "vendedor123", model.RolVendedor},
	}

	for _, u := range users {
		var existing model.Usuario
		err := db.WithContext(ctx).Where("rut = ?", u.rut).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), 12)
		if err != nil {
			return err
		}
		usuario := model.Usuario{
			Nombre:       u.nombre,
			Rut:          u.rut,
			PasswordHash: string(hash),
			Rol:          u.rol,
			Activo:       true,
		}
		if err := db.WithContext(ctx).Create(&usuario).Error; err != nil {
			return err
		}
		log.Info().Str("rut", u.rut).Str("rol", u.rol).Msg("usuario creado")
	}
	return nil
}

func seedCatalogo(ctx context.Context, db *gorm.DB) error {
	byNombre := make(map[string]*model.Categoria, len(categorias))
	for i := range categorias {
		c := categorias[i]
		var existing model.Categoria
		err := db.WithContext(ctx).Where("nombre = ?", c.Nombre).First(&existing).Error
		switch {
		case err == nil:
			byNombre[c.Nombre] = &existing
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		if err := db.WithContext(ctx).Create(&c).Error; err != nil {
			return err
		}
		byNombre[c.Nombre] = &c
	}

	for _, p := range productos {
		var existing model.Producto
		err := db.WithContext(ctx).Where("nombre = ?", p.nombre).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		producto := model.Producto{
			Nombre: p.nombre,
			Precio: p.precio,
			Stock:  p.stock,
		}
		if cat, ok := byNombre[p.categoria]; ok {
			producto.CategoriaID = &cat.ID
		}
		if err := db.WithContext(ctx).Create(&producto).Error; err != nil {
			return err
		}
	}
	log.Info().Int("categorias", len(categorias)).Int("productos", len(productos)).Msg("catalogo cargado")
	return nil
}
