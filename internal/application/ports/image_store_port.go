package ports

import "mime/multipart"

// ImageStore define el puerto de salida para las imágenes subidas.
// La implementación valida tipo y tamaño antes de escribir nada.
type ImageStore interface {
	// Save valida y guarda el archivo; devuelve el nombre generado.
	Save(file *multipart.FileHeader) (string, error)
	// Remove elimina un archivo previamente guardado.
	Remove(name string) error
	// Resolve sanea el nombre y devuelve la ruta absoluta de un archivo existente.
	Resolve(name string) (string, error)
}
